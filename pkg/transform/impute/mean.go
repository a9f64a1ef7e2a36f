package impute

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

type Mean struct{ Column string }

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	vals := present(col)
	if len(vals) == 0 {
		return f, nil
	}
	mean := stat.Mean(vals, nil)
	switch c := col.(type) {
	case *ds.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, mean)
			}
		}
	case *ds.IntColumn:
		// round to nearest
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, int64(math.Round(mean)))
			}
		}
	}
	return f, nil
}

// present collects the non-null numeric values of col.
func present(col ds.Column) []float64 {
	if col.Kind() != ds.KindFloat && col.Kind() != ds.KindInt {
		return nil
	}
	vals := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if v, ok := ds.FloatAt(col, i); ok {
			vals = append(vals, v)
		}
	}
	return vals
}
