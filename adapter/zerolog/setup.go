package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

// Config is an explicit, code-first configuration for zerolog + xtrace.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MinType           xtrace.LogType
	Console           bool   // pretty console output instead of JSON
	ConsoleTimeFormat string // only used if Console==true; default time.RFC3339Nano
}

// Use builds a zerolog-backed xtrace logger from Config, sets it as the
// global logger and returns it. Timestamps come from xclock.Default().
func Use(cfg Config) (*xtrace.Logger, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.ConsoleTimeFormat}
		if cw.TimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}
	zl = zl.Level(mapLevel(cfg.MinType))

	logger, err := xtrace.NewBuilder().
		WithClock(xclock.Default()).
		ForAllLogs().
		CustomDestination(New(zl)).
		BuildLogger()
	if err != nil {
		return nil, err
	}
	xtrace.SetGlobal(logger)
	return logger, nil
}
