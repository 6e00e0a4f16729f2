package translator

import "context"

// Translator is the gateway to an external text-translation capability.
// Callers hand it a batch's delimiter-joined text and get back the translated
// text using the same delimiter convention.
type Translator interface {
	Translate(ctx context.Context, text string, targetLanguage string) (string, error)
}
