package gorecord

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the package-level
// Declare, Lookup and Create.
func DefaultRegistry() *Registry { return defaultRegistry }

// Declare declares name in the default registry.
func Declare(name string, d Declaration) (*RecordType, error) {
	return defaultRegistry.Declare(name, d)
}

// Lookup looks name up in the default registry.
func Lookup(name string) (*RecordType, error) { return defaultRegistry.Lookup(name) }

// Create constructs a record of the named type from the default registry.
func Create(name string, data map[string]any) (*Record, error) {
	return defaultRegistry.Create(name, data)
}
