package impute

import (
	"context"
	"time"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Mode fills nulls with the most frequent value; ties go to the value that
// reached the winning count first.
type Mode struct{ Column string }

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *ds.StringColumn:
		fillMode(c)
	case *ds.IntColumn:
		fillMode(c)
	case *ds.FloatColumn:
		fillMode(c)
	case *ds.BoolColumn:
		fillMode(c)
	case *ds.TimeColumn:
		fillMode(c)
	}
	return f, nil
}

func fillMode[T comparable](c *ds.Vector[T]) {
	counts := map[any]int{}
	var best T
	var bestc int
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			continue
		}
		k := key(v)
		counts[k]++
		if counts[k] > bestc {
			bestc = counts[k]
			best = v
		}
	}
	if bestc == 0 {
		return
	}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, best)
		}
	}
}

// key makes equal instants in different locations count together.
func key(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UnixNano()
	}
	return v
}
