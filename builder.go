package xtrace

import "github.com/trickstertwo/xclock"

// Rule decides whether a log group accepts a record. A nil Rule accepts all.
type Rule func(r Record) bool

// Group is a named set of destinations sharing one Rule.
type Group struct {
	Name         string
	Rule         Rule
	Destinations []Destination
}

func (g *Group) accepts(r Record) bool { return g.Rule == nil || g.Rule(r) }

// Config for constructing a Logger (Factory data structure).
type Config struct {
	Groups       []*Group
	Observers    []Observer
	Clock        xclock.Clock // optional; defaults to xclock.Now()
	ErrorHandler ErrorHandler // optional; defaults to a line on stderr
}

// Builder separates construction from representation (Builder pattern).
// The first configuration error reported through any group is kept and
// returned by Build.
type Builder struct {
	cfg Config
	err error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	b.cfg.ErrorHandler = h
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// ForAllLogs opens a group that accepts every record.
func (b *Builder) ForAllLogs() *GroupBuilder {
	return b.NewLogGroup("all", nil)
}

// NewLogGroup opens a group accepting the records matched by rule.
func (b *Builder) NewLogGroup(name string, rule Rule) *GroupBuilder {
	g := &Group{Name: name, Rule: rule}
	b.cfg.Groups = append(b.cfg.Groups, g)
	return &GroupBuilder{parent: b, group: g}
}

// Err returns the first configuration error reported so far.
func (b *Builder) Err() error { return b.err }

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	n := 0
	for _, g := range b.cfg.Groups {
		n += len(g.Destinations)
	}
	if n == 0 {
		return nil, ErrNoDestinations
	}
	return newLogger(b.cfg), nil
}

func (b *Builder) fail(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// GroupBuilder is the DestinationsBuilder of a single group.
type GroupBuilder struct {
	parent *Builder
	group  *Group
}

var _ DestinationsBuilder = (*GroupBuilder)(nil)

func (g *GroupBuilder) CustomDestination(d Destination) DestinationsBuilder {
	if d == nil {
		g.parent.fail(NilArgument("destination"))
		return g
	}
	g.group.Destinations = append(g.group.Destinations, d)
	return g
}

func (g *GroupBuilder) Fail(err error) DestinationsBuilder {
	g.parent.fail(err)
	return g
}

func (g *GroupBuilder) BuildLogger() (*Logger, error) { return g.parent.Build() }

// Builder returns the logger builder, e.g. to open another group.
func (g *GroupBuilder) Builder() *Builder { return g.parent }

// Group exposes the group being configured.
func (g *GroupBuilder) Group() *Group { return g.group }
