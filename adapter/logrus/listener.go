package logrusadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/diag"
)

// Listener writes trace lines as logrus entries at a fixed level.
type Listener struct {
	e     *logrus.Entry
	level logrus.Level
}

var _ diag.Listener = (*Listener)(nil)

func NewListener(l *logrus.Logger, typ xtrace.LogType) *Listener {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Listener{e: logrus.NewEntry(l), level: toLogrusLevel(typ)}
}

func (li *Listener) WriteLine(text string) error {
	li.e.Log(li.level, text)
	return nil
}
