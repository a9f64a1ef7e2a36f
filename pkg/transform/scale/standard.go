package scale

import (
	"context"

	"gonum.org/v1/gonum/stat"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Standard rescales numeric columns to zero mean and unit (sample) standard
// deviation. With no Columns every numeric column is scaled. Columns with a
// single distinct value become 0. Nulls stay null.
type Standard struct {
	Columns []string
	Exclude []string
}

func (t *Standard) Name() string { return "standard_scale" }

func (t *Standard) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	skip := make(map[string]struct{}, len(t.Exclude))
	for _, e := range t.Exclude {
		skip[e] = struct{}{}
	}
	names := t.Columns
	if len(names) == 0 {
		for _, cs := range f.Schema().Columns {
			if cs.Type == ds.KindFloat || cs.Type == ds.KindInt {
				names = append(names, cs.Name)
			}
		}
	}
	for _, name := range names {
		if _, ok := skip[name]; ok {
			continue
		}
		col, ok := f.ColumnByName(name)
		if !ok || (col.Kind() != ds.KindFloat && col.Kind() != ds.KindInt) {
			continue
		}
		vals := make([]float64, 0, col.Len())
		for i := 0; i < col.Len(); i++ {
			if v, ok := ds.FloatAt(col, i); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(vals, nil)
		out := ds.NewFloatColumn(name, col.Len())
		for i := 0; i < col.Len(); i++ {
			v, ok := ds.FloatAt(col, i)
			if !ok {
				continue
			}
			if std == 0 || len(vals) < 2 {
				out.Set(i, 0)
				continue
			}
			out.Set(i, (v-mean)/std)
		}
		if err := f.SetColumn(out); err != nil {
			return f, err
		}
	}
	return f, nil
}
