package trellis

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// SetLogger replaces the package logger. A nil logger silences logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *zap.Logger { return logger }

// NewLogger builds a zap logger from cfg. Format "json" selects the
// production encoder; anything else a colored console encoder.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// --- Debug checks ---

// debugMaxTreeDepth is the depth beyond which debug mode warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the child count beyond which debug mode warns.
const debugMaxChildCount = 1000

func (s *Scene) debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = s.entities.get(p.parent) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			zap.String("entity", e.Name), zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth))
	}
}

func (s *Scene) debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold",
			zap.String("entity", e.Name), zap.Int("children", len(e.children)), zap.Int("threshold", debugMaxChildCount))
	}
}
