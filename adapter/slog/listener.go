package slogadapter

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/diag"
)

// Listener writes trace lines as slog messages at a fixed level.
type Listener struct {
	l     *slog.Logger
	level slog.Level
}

var _ diag.Listener = (*Listener)(nil)

func NewListener(l *slog.Logger, typ xtrace.LogType) *Listener {
	if l == nil {
		l = slog.Default()
	}
	return &Listener{l: l, level: typ.SlogLevel()}
}

func (li *Listener) WriteLine(text string) error {
	li.l.LogAttrs(context.Background(), li.level, text)
	return nil
}
