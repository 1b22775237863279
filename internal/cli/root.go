package cli

import (
	"fmt"

	"github.com/MikeBiancalana/datefield/internal/config"
	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/MikeBiancalana/datefield/internal/logger"
	"github.com/MikeBiancalana/datefield/internal/record"
	"github.com/MikeBiancalana/datefield/internal/storage"
	"github.com/MikeBiancalana/datefield/internal/sync"
	"github.com/MikeBiancalana/datefield/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var configPathFlag string

// RootCmd is the root command for the CLI
var RootCmd = &cobra.Command{
	Use:   "datefield",
	Short: "Datefield - keep track of the dates that matter",
	Long: `A terminal tool for named dates ("passport expiry", "next dentist visit").
Dates are typed in the configured edit format or as shortcuts like t, tm, +3d and fri.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return runTUI()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Config file (default ~/.datefield/config.yaml)")

	// Add subcommands
	RootCmd.AddCommand(formatCmd)
	RootCmd.AddCommand(parseCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(clearCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(GetConfigCommand())
}

func runTUI() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logger.InitializeWithConfig(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		TUIMode: true,
	}); err != nil {
		return err
	}
	defer logger.Close()

	bundle, err := localize.NewBundle(cfg, nil)
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	svc, closeDB, err := openService()
	if err != nil {
		return err
	}
	defer closeDB()

	model := tui.NewModel(svc, bundle)

	watcher, err := sync.NewConfigWatcher(path, logger.GetLogger())
	if err != nil {
		logger.Warn("cli: config hot reload disabled", "error", err)
	} else {
		model.SetWatcher(watcher)
		defer watcher.Stop()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// configPath returns the --config flag or the default location.
func configPath() (string, error) {
	if configPathFlag != "" {
		return configPathFlag, nil
	}
	return config.ConfigPath()
}

// loadConfig reads the config file, returning its path alongside.
func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// loadBundle builds the formats and parsers described by the config file.
func loadBundle() (*localize.Bundle, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}
	bundle, err := localize.NewBundle(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return bundle, nil
}

// openService opens the database and returns the record service with a
// func that closes both.
func openService() (*record.Service, func(), error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := storage.NewDatabase(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	svc := record.NewService(record.NewRepository(db), logger.GetLogger())
	return svc, func() {
		svc.Close()
		db.Close()
	}, nil
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
