// Package standardize cleans up text values before they are encoded.
package standardize

import (
	"context"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Trim strips surrounding whitespace from text cells. With no Columns it
// trims every string column. Cells left empty become null.
type Trim struct{ Columns []string }

func (t *Trim) Name() string { return "trim_whitespace" }

func (t *Trim) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	names := t.Columns
	if len(names) == 0 {
		names = f.Names()
	}
	for _, name := range names {
		col, ok := f.ColumnByName(name)
		if !ok {
			continue
		}
		c, ok := col.(*ds.StringColumn)
		if !ok {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				continue
			}
			switch s := strings.TrimSpace(v); {
			case s == "":
				c.SetNull(i)
			case s != v:
				c.Set(i, s)
			}
		}
	}
	return f, nil
}
