package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/MimeLyc/srt-batch-translator/internal/config"
	"github.com/MimeLyc/srt-batch-translator/internal/llm"
	"github.com/MimeLyc/srt-batch-translator/internal/persistence"
	"github.com/MimeLyc/srt-batch-translator/internal/service"
	"github.com/MimeLyc/srt-batch-translator/internal/translator"
	"github.com/MimeLyc/srt-batch-translator/pkg/log"
)

func main() {
	// Local development convenience; missing file is fine.
	_ = godotenv.Load(".env.local")

	cfg, err := config.New()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.LogLevel))

	if err := newRootCmd(cfg).Execute(); err != nil {
		service.NewDefaultErrorHandler().Handle(err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	rootCmd := &cobra.Command{
		Use:   "srtrans <file> <language>",
		Short: "Translate SRT subtitle files with an LLM backend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), cfg, args[0], args[1], outputPath)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: input path with language code before the extension)")

	rootCmd.AddCommand(newWatchCmd(cfg))

	return rootCmd
}

func newWatchCmd(cfg *config.Config) *cobra.Command {
	var (
		dirs     []string
		cronExpr string
		lang     string
	)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically scan directories and translate pending subtitle files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dirs) > 0 {
				cfg.Watch.Dirs = dirs
			}
			if cronExpr != "" {
				cfg.Watch.CronExpr = cronExpr
			}
			if lang != "" {
				cfg.Watch.TargetLanguage = lang
			}
			return runWatch(cmd.Context(), cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	watchCmd.Flags().StringSliceVar(&dirs, "dir", nil, "Directory to scan (repeatable, default: WATCH_DIRS)")
	watchCmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression for scan scheduling (default: WATCH_CRON)")
	watchCmd.Flags().StringVar(&lang, "lang", "", "Target language (default: WATCH_TARGET_LANGUAGE)")

	return watchCmd
}

// newGateway builds the LLM-backed translation gateway. The credential check
// happens here, before any file I/O.
func newGateway(cfg *config.Config) (translator.Translator, error) {
	if cfg.LLM.APIKey == "" {
		return nil, service.NewError(service.ErrConfig, "LLM_API_KEY not found in environment")
	}

	client, err := llm.NewClient(&llm.Config{
		APIKey:      cfg.LLM.APIKey,
		APIURL:      cfg.LLM.APIURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		SiteURL:     cfg.LLM.SiteURL,
		AppName:     cfg.LLM.AppName,
	})
	if err != nil {
		return nil, service.WrapError(err, service.ErrConfig, "invalid LLM configuration")
	}

	return translator.NewLLMTranslator(client), nil
}

// newCheckpointStore opens the optional checkpoint database. A nil store
// disables checkpointing.
func newCheckpointStore(cfg *config.Config) (service.CheckpointStore, func(), error) {
	if cfg.Storage.CheckpointDB == "" {
		return nil, func() {}, nil
	}

	store, err := persistence.NewSQLiteStore(cfg.Storage.CheckpointDB)
	if err != nil {
		return nil, nil, service.WrapError(err, service.ErrConfig, "failed to open checkpoint database")
	}
	return store, func() { _ = store.Close() }, nil
}

func runTranslate(ctx context.Context, cfg *config.Config, inputPath, targetLang, outputPath string) error {
	gateway, err := newGateway(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := newCheckpointStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.Option{}
	if store != nil {
		opts = append(opts, service.WithCheckpointStore(store))
	}

	ft := service.NewFileTranslator(service.RunConfig{
		InputPath:      inputPath,
		TargetLanguage: targetLang,
		OutputPath:     outputPath,
		MaxBatchTokens: cfg.Translate.MaxBatchTokens,
	}, gateway, opts...)

	result, err := ft.Run(ctx)
	if err != nil {
		return err
	}

	if result.OutputPath == "" {
		log.Warn("Run finished without producing output")
		return nil
	}

	fmt.Printf("Translation completed and saved to %s\n", result.OutputPath)
	return nil
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	gateway, err := newGateway(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := newCheckpointStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	svc := service.NewWatchService(*cfg, c, gateway, store)
	if err := svc.Schedule(ctx); err != nil {
		return err
	}

	// One pass up front so a fresh deployment does not wait for the first tick.
	if err := svc.RunOnce(ctx); err != nil {
		log.Error("initial scan failed: %v", err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}
