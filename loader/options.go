package loader

import "github.com/reoring/gorecord/log"

// DefaultExtensions are tried in order when resolving a name to a file.
var DefaultExtensions = []string{".yaml", ".yml", ".json"}

type config struct {
	logger log.Logger
	exts   []string
}

func defaultConfig() config {
	return config{logger: log.Root, exts: DefaultExtensions}
}

// Option is a functional option applied by New.
type Option func(*config)

// WithLogger sets the logger that receives loading events.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithExtensions replaces the file extensions tried when resolving names.
// An empty list keeps DefaultExtensions.
func WithExtensions(exts ...string) Option {
	return func(c *config) {
		if len(exts) > 0 {
			c.exts = exts
		}
	}
}
