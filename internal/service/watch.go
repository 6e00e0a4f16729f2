package service

import (
	"context"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/srt-batch-translator/internal/config"
	"github.com/MimeLyc/srt-batch-translator/internal/library"
	"github.com/MimeLyc/srt-batch-translator/internal/translator"
	"github.com/MimeLyc/srt-batch-translator/pkg/log"
)

// WatchService periodically scans media directories and translates subtitle
// files that have no target-language sibling yet. Files are processed one at
// a time; a failure on one file is logged and the scan moves on.
type WatchService struct {
	cfg         config.Config
	cron        *cron.Cron
	translator  translator.Translator
	checkpoints CheckpointStore
}

func NewWatchService(
	cfg config.Config,
	c *cron.Cron,
	tr translator.Translator,
	checkpoints CheckpointStore,
) WatchService {
	return WatchService{
		cfg:         cfg,
		cron:        c,
		translator:  tr,
		checkpoints: checkpoints,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the scan on the service's cron. Overlapping triggers
// collapse into one running scan.
func (s WatchService) Schedule(ctx context.Context) error {
	if err := s.cfg.Watch.Validate(); err != nil {
		return WrapError(err, ErrConfig, "invalid watch configuration")
	}

	log.Info("watching %v on schedule %q", s.cfg.Watch.Dirs, s.cfg.Watch.CronExpr)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("watch-scan", func() (any, error) {
			if err := s.RunOnce(ctx); err != nil {
				log.Error("watch scan failed: %v", err)
			}
			return nil, nil
		})
	}
	_, err := s.cron.AddFunc(s.cfg.Watch.CronExpr, runFunc)
	return err
}

// RunOnce performs a single scan-and-translate pass
func (s WatchService) RunOnce(ctx context.Context) error {
	scanner := library.NewScanner(s.cfg.Watch.Dirs, s.cfg.Watch.TargetLanguage)
	pending, err := scanner.FindPending(ctx)
	if err != nil {
		return WrapError(err, ErrFileRead, "library scan failed")
	}
	log.Info("found %d subtitle files pending translation", len(pending))

	for _, path := range pending {
		ft := NewFileTranslator(RunConfig{
			InputPath:        path,
			TargetLanguage:   s.cfg.Watch.TargetLanguage,
			MaxBatchTokens:   s.cfg.Translate.MaxBatchTokens,
			SkipSameLanguage: true,
		}, s.translator, WithCheckpointStore(s.checkpoints))

		result, err := ft.Run(ctx)
		if err != nil {
			log.Error("failed to translate %s: %v", path, err)
			continue
		}
		if result.Skipped {
			continue
		}
		log.Info("translated %s -> %s", path, result.OutputPath)
	}

	return nil
}
