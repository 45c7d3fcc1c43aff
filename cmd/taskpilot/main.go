package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskpilot/internal/config"
	"taskpilot/internal/logging"
	"taskpilot/internal/suggest"
	"taskpilot/internal/todo"
	"taskpilot/internal/ui"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "taskpilot",
		Short:   "Todo list with reminders and AI task suggestions",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runTUI,
	}
	rootCmd.PersistentFlags().String("config", "", "config file (default $TASKPILOT_CONFIG or ~/.config/taskpilot/config.toml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(clearCmd())
	return rootCmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	configPath := configPathFlag(cmd)
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	if firstLaunch {
		logger.Info("wrote default config", "path", configPath)
	}

	kv, err := openKV(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer kv.Close()

	store, err := todo.Open(todo.NewBlobPersister(kv))
	if err != nil {
		return err
	}

	if err := ui.Run(ui.Deps{
		Store:     store,
		Prefs:     kv,
		Generator: suggest.NewClient(cfg.ProxyURL),
		Notifier:  ui.BellNotifier{W: os.Stderr},
		Keys:      cfg.Keys,
		Logger:    logger,
	}); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func configPathFlag(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.ResolveConfigPath()
}
