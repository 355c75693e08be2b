package zapadapter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/diag"
)

// Listener writes trace lines as zap messages at a fixed level.
type Listener struct {
	l     *zap.Logger
	level zapcore.Level
}

var (
	_ diag.Listener = (*Listener)(nil)
	_ diag.Flusher  = (*Listener)(nil)
)

// NewListener logs every line at the level matching typ.
func NewListener(l *zap.Logger, typ xtrace.LogType) *Listener {
	if l == nil {
		l = zap.NewNop()
	}
	return &Listener{l: l, level: toZapLevel(typ)}
}

func (li *Listener) WriteLine(text string) error {
	if ce := li.l.Check(li.level, text); ce != nil {
		ce.Write()
	}
	return nil
}

func (li *Listener) Flush() error { return li.l.Sync() }
