package features

import (
	"fmt"
	"sort"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Behavior is a named operation run against a Context.
type Behavior func(c *Context) (*ds.Frame, error)

// Func is a Behavior bound to its Context.
type Func func() (*ds.Frame, error)

var registry = map[string]Behavior{}

// Register adds a behavior under name. Names are case-insensitive and must be unique.
func Register(name string, b Behavior) {
	key := normalize(name)
	if key == "" || b == nil {
		panic("features: Register with empty name or nil behavior")
	}
	if _, dup := registry[key]; dup {
		panic(fmt.Sprintf("features: duplicate registration of %q", key))
	}
	registry[key] = b
}

// Names lists the registered operation names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether name resolves to a registered operation.
func Has(name string) bool {
	_, ok := registry[normalize(name)]
	return ok
}

// Lookup resolves name and binds the behavior to a new Context over data.
func Lookup(name string, data *ds.Frame, logger Logger, opt Options) (Func, error) {
	b, ok := registry[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownOperation, name, strings.Join(Names(), ", "))
	}
	c := NewContext(data, logger, opt)
	return func() (*ds.Frame, error) { return b(c) }, nil
}

func normalize(name string) string { return strings.ToLower(name) }

func init() {
	Register(CalculateTotalDays, (*Context).CalculateTotalDays)
	Register(SeparateDateColumns, (*Context).SeparateDateColumns)
}
