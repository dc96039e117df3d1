package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"seo-spinner/internal/config"
	"seo-spinner/internal/database"
	"seo-spinner/internal/enhance"
	"seo-spinner/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spinnerctl",
		Short: "Operator tool for the local SEO content spinner",
		Long: `spinnerctl manages the content spinner database and runs generation
from the command line.

Settings are read from flags, then SPINNER_* / plain environment variables,
then an optional .spinnerctl.yaml, then the server's .env defaults.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.spinnerctl.yaml)")
	root.PersistentFlags().String("database-url", "", "Postgres DSN (overrides DATABASE_URL)")
	root.PersistentFlags().Bool("debug", false, "log SQL queries")
	_ = viper.BindPFlag("database_url", root.PersistentFlags().Lookup("database-url"))
	_ = viper.BindPFlag("bundebug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTemplatesCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newUsersCmd())
	return root
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".spinnerctl")
	}
	viper.SetEnvPrefix("spinner")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers viper overrides on top of the server configuration.
func loadConfig() *config.Config {
	cfg := config.Load()
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if viper.GetBool("bundebug") {
		cfg.BunDebug = true
	}
	if key := viper.GetString("gemini_api_key"); key != "" {
		cfg.GeminiAPIKey = key
	}
	if model := viper.GetString("gemini_model"); model != "" {
		cfg.GeminiModel = model
	}
	if n := viper.GetInt("generation_workers"); n > 0 {
		cfg.GenerationWorkers = n
	}
	return cfg
}

// appEnv is what every subcommand needs.
type appEnv struct {
	cfg  *config.Config
	logr *logger.Logger
	db   *bun.DB
}

func openEnv() (*appEnv, error) {
	cfg := loadConfig()
	logr := logger.New(cfg)
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	return &appEnv{cfg: cfg, logr: logr, db: db}, nil
}

func (e *appEnv) Close() {
	_ = e.db.Close()
	e.logr.Sync()
}

// enhancer returns a Gemini-backed enhancer when configured, and a closer.
func (e *appEnv) enhancer(ctx context.Context) (*enhance.Enhancer, func()) {
	if !e.cfg.EnhancementEnabled() {
		return enhance.NewEnhancer(nil, e.cfg.EnhanceTimeout, e.logr.Logger), func() {}
	}
	client, err := enhance.NewGeminiClient(ctx, e.cfg.GeminiAPIKey, e.cfg.GeminiModel, e.cfg.EnhanceTemperature)
	if err != nil {
		e.logr.Warn("content enhancement disabled", zap.Error(err))
		return enhance.NewEnhancer(nil, e.cfg.EnhanceTimeout, e.logr.Logger), func() {}
	}
	return enhance.NewEnhancer(client, e.cfg.EnhanceTimeout, e.logr.Logger), func() { _ = client.Close() }
}
