package trace

import "github.com/trickstertwo/xtrace"

func init() {
	xtrace.RegisterDefaultDestinationFactory(func() xtrace.Destination {
		return NewDefault()
	})
}
