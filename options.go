package gorecord

import "github.com/reoring/gorecord/log"

// DefaultIDProperty is the identity field name used when neither a type nor
// its ancestors name one.
const DefaultIDProperty = "id"

type config struct {
	logger            log.Logger
	defaultIDProperty string
}

func defaultConfig() config {
	return config{
		logger:            log.Root,
		defaultIDProperty: DefaultIDProperty,
	}
}

// Option is a functional option applied by NewRegistry.
type Option func(*config)

// WithLogger sets the logger that receives declaration events.
// A nil logger keeps the default, which discards.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDefaultIDProperty sets the identity field name for root types that do
// not declare one. An empty name resets to DefaultIDProperty.
func WithDefaultIDProperty(name string) Option {
	return func(c *config) {
		if name == "" {
			name = DefaultIDProperty
		}
		c.defaultIDProperty = name
	}
}
