package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/MimeLyc/srt-batch-translator/internal/batch"
	"github.com/MimeLyc/srt-batch-translator/internal/persistence"
	"github.com/MimeLyc/srt-batch-translator/internal/subtitle"
	"github.com/MimeLyc/srt-batch-translator/internal/translator"
	"github.com/MimeLyc/srt-batch-translator/pkg/file"
	"github.com/MimeLyc/srt-batch-translator/pkg/log"
)

// CheckpointStore persists per-batch gateway results so an aborted run can
// resume without re-translating. Satisfied by persistence.SQLiteStore.
type CheckpointStore interface {
	LoadCheckpoints(ctx context.Context, jobKey string) ([]persistence.BatchCheckpoint, error)
	SaveCheckpoint(ctx context.Context, jobKey string, batchStart, batchEnd int, translatedText string) error
	DeleteCheckpoints(ctx context.Context, jobKey string) error
}

// RunConfig configures one translation run
type RunConfig struct {
	InputPath      string
	TargetLanguage string
	OutputPath     string // empty means derive from InputPath
	MaxBatchTokens int

	// SkipSameLanguage makes the run a no-op when the source file already
	// reads as the target language; used by watch mode.
	SkipSameLanguage bool
}

// ResolvedOutputPath returns the explicit output path, or the input path with
// the target-language code inserted before the extension.
func (c RunConfig) ResolvedOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return file.InsertLangCode(c.InputPath, c.TargetLanguage)
}

func (c RunConfig) jobKey() string {
	return fmt.Sprintf("%s:%s", c.InputPath, strings.ToLower(c.TargetLanguage))
}

// RunResult summarizes a completed translation run
type RunResult struct {
	OutputPath   string
	SegmentCount int
	BatchCount   int
	Content      string
	Skipped      bool
}

// FileTranslator runs the whole pipeline for one subtitle file: parse,
// batch, translate each batch through the gateway, reconcile fragments onto
// original timestamps and write the output. Batches are processed strictly
// in order; a batch failure after retries aborts the run.
type FileTranslator struct {
	config      RunConfig
	translator  translator.Translator
	writer      subtitle.Writer
	estimator   batch.CostEstimator
	checkpoints CheckpointStore
}

// Option configures a FileTranslator
type Option func(*FileTranslator)

// WithWriter overrides the subtitle writer
func WithWriter(w subtitle.Writer) Option {
	return func(t *FileTranslator) {
		t.writer = w
	}
}

// WithCostEstimator overrides the batching cost estimator
func WithCostEstimator(e batch.CostEstimator) Option {
	return func(t *FileTranslator) {
		t.estimator = e
	}
}

// WithCheckpointStore enables per-batch checkpoint persistence
func WithCheckpointStore(store CheckpointStore) Option {
	return func(t *FileTranslator) {
		t.checkpoints = store
	}
}

// NewFileTranslator creates a FileTranslator for one run
func NewFileTranslator(config RunConfig, tr translator.Translator, opts ...Option) *FileTranslator {
	t := &FileTranslator{
		config:     config,
		translator: tr,
		writer:     subtitle.NewWriter(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run executes the translation run
func (t *FileTranslator) Run(ctx context.Context) (*RunResult, error) {
	if strings.TrimSpace(t.config.TargetLanguage) == "" {
		return nil, NewError(ErrValidation, "target language is required")
	}

	doc, err := subtitle.NewReader(t.config.InputPath).Read()
	if err != nil {
		return nil, WrapError(err, ErrFileRead, "failed to read subtitle file").
			WithContext("path", t.config.InputPath)
	}

	if t.config.SkipSameLanguage && t.sameLanguage(doc.Language) {
		log.Info("%s already reads as %s, skipping", t.config.InputPath, t.config.TargetLanguage)
		return &RunResult{Skipped: true}, nil
	}

	batches := batch.NewBatcher(t.config.MaxBatchTokens, t.estimator).Partition(doc.Segments)
	log.Info("translating %s: %d segments in %d batches", t.config.InputPath, len(doc.Segments), len(batches))

	stored := t.loadCheckpoints(ctx)
	reconciler := NewReconciler(doc.Segments)

	var output []subtitle.Segment
	segmentOffset := 0
	for i, b := range batches {
		batchStart := segmentOffset
		batchEnd := segmentOffset + len(b.Segments)
		segmentOffset = batchEnd

		translated, ok := stored[checkpointKey(batchStart, batchEnd)]
		if ok {
			log.Info("batch %d/%d restored from checkpoint", i+1, len(batches))
		} else {
			translated, err = t.translator.Translate(ctx, b.JoinTexts(), t.config.TargetLanguage)
			if err != nil {
				return nil, WrapError(err, ErrTranslation, "batch translation failed").
					WithContext("batch", fmt.Sprintf("%d/%d", i+1, len(batches)))
			}
			t.saveCheckpoint(ctx, batchStart, batchEnd, translated)
		}

		// An empty gateway result means the batch contributes no output.
		if strings.TrimSpace(translated) == "" {
			log.Warn("batch %d/%d produced no translation, skipping", i+1, len(batches))
			continue
		}

		output = append(output, reconciler.ReconcileBatch(translated, b)...)
	}

	result := &RunResult{
		SegmentCount: len(output),
		BatchCount:   len(batches),
		Content:      subtitle.Render(output),
	}

	if len(output) == 0 {
		log.Warn("no translated output produced for %s", t.config.InputPath)
		return result, nil
	}

	outputPath := t.config.ResolvedOutputPath()
	if err := t.writer.Write(outputPath, output); err != nil {
		return nil, WrapError(err, ErrFileWrite, "failed to write translated subtitle").
			WithContext("path", outputPath)
	}
	result.OutputPath = outputPath

	t.clearCheckpoints(ctx)

	return result, nil
}

func (t *FileTranslator) sameLanguage(detected language.Tag) bool {
	if detected == language.Und {
		return false
	}
	target, err := language.Parse(t.config.TargetLanguage)
	if err != nil {
		return false
	}
	detectedBase, _ := detected.Base()
	targetBase, _ := target.Base()
	return detectedBase == targetBase
}

func (t *FileTranslator) loadCheckpoints(ctx context.Context) map[string]string {
	if t.checkpoints == nil {
		return nil
	}

	checkpoints, err := t.checkpoints.LoadCheckpoints(ctx, t.config.jobKey())
	if err != nil {
		log.Warn("failed to load checkpoints: %v", err)
		return nil
	}

	stored := make(map[string]string, len(checkpoints))
	for _, cp := range checkpoints {
		stored[checkpointKey(cp.BatchStart, cp.BatchEnd)] = cp.TranslatedText
	}
	return stored
}

// saveCheckpoint is best-effort: a failed save never aborts the run
func (t *FileTranslator) saveCheckpoint(ctx context.Context, batchStart, batchEnd int, translated string) {
	if t.checkpoints == nil {
		return
	}
	if err := t.checkpoints.SaveCheckpoint(ctx, t.config.jobKey(), batchStart, batchEnd, translated); err != nil {
		log.Warn("failed to save checkpoint: %v", err)
	}
}

func (t *FileTranslator) clearCheckpoints(ctx context.Context) {
	if t.checkpoints == nil {
		return
	}
	if err := t.checkpoints.DeleteCheckpoints(ctx, t.config.jobKey()); err != nil {
		log.Warn("failed to clear checkpoints: %v", err)
	}
}

func checkpointKey(start, end int) string {
	return fmt.Sprintf("%d:%d", start, end)
}
