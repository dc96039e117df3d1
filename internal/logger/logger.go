package logger

import (
	"log"

	"seo-spinner/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "seo-spinner"

type Logger struct {
	*zap.Logger
}

// New builds a JSON logger in production and a colored console logger
// elsewhere. LOG_LEVEL overrides the default level.
func New(cfg *config.Config) *Logger {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.InitialFields = map[string]any{"service": serviceName}

	if cfg.LogLevel != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			log.Printf("invalid LOG_LEVEL %q, keeping %s\n", cfg.LogLevel, zapCfg.Level)
		} else {
			zapCfg.Level = lvl
		}
	}

	l, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{l}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap.NewNop()}
}

// Sync flushes buffered entries; errors on stderr/stdout sync are ignored.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}
