package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bijbelquiz.app/backend/internal/authoring"
	"bijbelquiz.app/backend/internal/config"
	"bijbelquiz.app/backend/internal/kvstore"
	"bijbelquiz.app/backend/internal/tui"
)

func newAuthorCommand() *cobra.Command {
	var (
		store     string
		exportDir string
		noColor   bool
	)

	command := &cobra.Command{
		Use:   "author",
		Short: "Write new questions in an interactive form and export them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if store != "" {
				cfg.Authoring.Store = store
			}
			if exportDir != "" {
				cfg.Authoring.ExportDirectory = exportDir
			}
			setupLogger(cfg, false)

			kv, closeKV, err := newKV(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeKV()

			toaster := authoring.NewToaster(authoring.TimerScheduler{})
			exporter := &authoring.DirExporter{Dir: cfg.Authoring.ExportDirectory}
			ctrl := authoring.NewController(authoring.NewBackup(kv, cfg.Authoring.StoreTimeout), toaster, exporter)

			if err := tui.Run(ctrl, toaster, tui.Options{NoColor: noColor}); err != nil {
				return fmt.Errorf("tui.Run() > %w", err)
			}
			if exporter.LastPath != "" {
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Laatste export: %s", exporter.LastPath))
			}
			if n := ctrl.Count(); n > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("%d vraag/vragen nog niet gedownload (bewaard in de backup)", n))
			}
			return nil
		},
	}

	command.Flags().StringVar(&store, "store", "", "backup store: memory, file or redis (overrides config)")
	command.Flags().StringVar(&exportDir, "export-dir", "", "directory for downloaded batches (overrides config)")
	command.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")

	return command
}

func newKV(ctx context.Context, cfg *config.Config) (kvstore.KV, func(), error) {
	switch cfg.Authoring.Store {
	case "memory":
		return kvstore.NewMemory(), func() {}, nil
	case "redis":
		if ctx == nil {
			ctx = context.Background()
		}
		r, err := kvstore.NewRedis(ctx, kvstore.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("kvstore.NewRedis() > %w", err)
		}
		return r, func() { _ = r.Close() }, nil
	case "file":
		return kvstore.NewFile(cfg.Authoring.StorePath), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown authoring store %q", cfg.Authoring.Store)
}
