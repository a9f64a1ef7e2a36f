package impute

import (
	"context"
	"sort"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	vals := present(col)
	if len(vals) == 0 {
		return f, nil
	}
	sort.Float64s(vals)
	var med float64
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		med = (vals[mid-1] + vals[mid]) / 2
	} else {
		med = vals[mid]
	}
	switch c := col.(type) {
	case *ds.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, med)
			}
		}
	case *ds.IntColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, int64(med))
			}
		}
	}
	return f, nil
}
