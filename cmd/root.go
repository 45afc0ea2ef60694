package cmd

import (
	"fmt"
	"os"

	"qa-forum/config"
	"qa-forum/database"
	"qa-forum/logger"
	"qa-forum/repositories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "qaforum",
	Short:         "Question and answer forum server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding config.yaml and .env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(userCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand needs before touching the database.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *repositories.Store
}

func bootstrap() (*env, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.InitLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &env{
		cfg:   cfg,
		log:   log,
		store: repositories.NewStore(db),
	}, nil
}

func (e *env) close() {
	if sqlDB, err := e.store.DB.DB(); err == nil {
		sqlDB.Close()
	}
	e.log.Sync()
}
