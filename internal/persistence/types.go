package persistence

// BatchCheckpoint is one persisted gateway result: the raw translated text of
// the batch covering segments [BatchStart, BatchEnd) of a run.
type BatchCheckpoint struct {
	BatchStart     int
	BatchEnd       int
	TranslatedText string
}
