package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

// Config is an explicit, code-first configuration for zap + xtrace.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	MinType            xtrace.LogType
	Console            bool                  // console encoder instead of JSON
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	Caller             bool
	CallerSkip         int
	TimestampFieldName string // default "ts" (the record's own timestamp)
}

// Use builds a zap-backed xtrace logger from Config, sets it as the global
// logger and returns it. The logger reads time from xclock.Default(), so
// frozen or offset clocks are respected in timestamps.
func Use(cfg Config) (*xtrace.Logger, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.Caller && cfg.CallerSkip <= 0 {
		cfg.CallerSkip = 2
	}

	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" && encCfg.EncodeTime == nil {
		encCfg = zapcore.EncoderConfig{
			LevelKey:       "level",
			MessageKey:     "message",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}
	// Records carry their own timestamp.
	encCfg.TimeKey = ""

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), toZapLevel(cfg.MinType))
	opts := []zap.Option{
		zap.AddStacktrace(zapcore.FatalLevel + 1),
	}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(cfg.CallerSkip))
	}

	dest := NewWithTimestampKey(zap.New(core, opts...), cfg.TimestampFieldName)
	logger, err := xtrace.NewBuilder().
		WithClock(xclock.Default()).
		ForAllLogs().
		CustomDestination(dest).
		BuildLogger()
	if err != nil {
		return nil, err
	}
	xtrace.SetGlobal(logger)
	return logger, nil
}
