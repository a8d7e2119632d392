package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kwbank/database"
	"kwbank/internal/config"
)

var (
	cfg     *config.Config
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kwbank",
	Short: "Keyword bank for Amazon PPC campaign management",
	Long: "Centralizes keyword operations including import, normalization,\n" +
		"deduplication, conflict detection and campaign generation.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		// Флаги имеют приоритет над окружением
		if !cmd.Flags().Changed("db") {
			dbPath = cfg.DatabasePath
		}

		level := parseLogLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		return nil
	},
}

// parseLogLevel преобразует уровень логирования из конфигурации
func parseLogLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Execute запускает корневую команду CLI
func Execute() error {
	return rootCmd.Execute()
}

// openBank открывает базу банка, создавая каталог данных при необходимости
func openBank() (*database.BankDB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return database.NewBankDB(dbPath)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/kwbank.db", "path to keyword bank database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dedupeCmd)
	rootCmd.AddCommand(conflictsCmd)
	rootCmd.AddCommand(createCampaignCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(auditCmd)
}
