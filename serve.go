package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bijbelquiz.app/backend/internal/activation"
	"bijbelquiz.app/backend/internal/api"
	"bijbelquiz.app/backend/internal/config"
	"bijbelquiz.app/backend/internal/download"
	"bijbelquiz.app/backend/internal/logger"
	"bijbelquiz.app/backend/internal/questionbank"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve activation codes, app downloads and the questions file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setupLogger(cfg, true)

			assets, err := newAssetSource(cfg.Downloads)
			if err != nil {
				return err
			}
			logger.Log.Info("starting",
				zap.String("questions", cfg.Questions.File),
				zap.String("download_mode", cfg.Downloads.Mode),
				zap.String("download_source", cfg.Downloads.Source),
				zap.Int("activation_codes", len(cfg.Activation.Codes)),
			)

			server := api.NewServer(cfg,
				activation.NewChecker(cfg.Activation.Codes),
				questionbank.New(cfg.Questions.File),
				assets,
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.ListenAndServe(ctx)
		},
	}
}

func newAssetSource(cfg config.DownloadsConfig) (download.AssetSource, error) {
	switch cfg.Source {
	case "minio":
		src, err := download.NewMinioSource(download.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Secure:    cfg.MinioSecure,
		})
		if err != nil {
			return nil, fmt.Errorf("download.NewMinioSource() > %w", err)
		}
		return src, nil
	default:
		return download.DirSource{Dir: cfg.Directory}, nil
	}
}
