package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog + xtrace.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	MinType            xtrace.LogType
	Format             Format               // JSON (default) or Text
	HandlerOptions     *slog.HandlerOptions // optional; Level and ReplaceAttr are managed by Use
	TimestampFieldName string               // default "ts"
}

// Use builds a slog-backed xtrace logger from Config, sets it as global and
// returns it. Levels are printed with LogType names.
func Use(cfg Config) (*xtrace.Logger, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := slog.HandlerOptions{}
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}
	opts.Level = cfg.MinType.SlogLevel()
	opts.ReplaceAttr = ReplaceLevelNames

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}

	logger, err := xtrace.NewBuilder().
		WithClock(xclock.Default()).
		ForAllLogs().
		CustomDestination(NewWithTimestampKey(slog.New(h), cfg.TimestampFieldName)).
		BuildLogger()
	if err != nil {
		return nil, err
	}
	xtrace.SetGlobal(logger)
	return logger, nil
}

// ReplaceAttr hook that prints the level as the matching LogType name and
// drops slog's own time attribute, since records carry their own timestamp.
func ReplaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, xtrace.LogType(lvl).String())
		}
	}
	return a
}
