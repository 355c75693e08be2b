package zerologadapter

import (
	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/diag"
)

// Listener writes trace lines as zerolog messages at a fixed level.
type Listener struct {
	l     zerolog.Logger
	level zerolog.Level
}

var _ diag.Listener = (*Listener)(nil)

func NewListener(l zerolog.Logger, typ xtrace.LogType) *Listener {
	return &Listener{l: l, level: mapLevel(typ)}
}

func (li *Listener) WriteLine(text string) error {
	if li.level < li.l.GetLevel() {
		return nil
	}
	li.l.WithLevel(li.level).Msg(text)
	return nil
}
