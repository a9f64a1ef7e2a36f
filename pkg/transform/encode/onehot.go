package encode

import (
	"context"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// OneHot replaces Column with one 0/1 column per category, named "<col>_<category>".
// Null cells are 0 in every indicator.
type OneHot struct{ Column string }

func (t *OneHot) Name() string { return "one_hot_encode" }

func (t *OneHot) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	cats := categories(col)
	indicators := make(map[string]*ds.IntColumn, len(cats))
	for _, c := range cats {
		ind := ds.NewIntColumn(t.Column+"_"+c, col.Len())
		for i := 0; i < col.Len(); i++ {
			ind.Set(i, 0)
		}
		indicators[c] = ind
	}
	for i := 0; i < col.Len(); i++ {
		if v, ok := ds.StringAt(col, i); ok {
			indicators[v].Set(i, 1)
		}
	}
	f.DropColumn(t.Column)
	for _, c := range cats {
		if err := f.SetColumn(indicators[c]); err != nil {
			return f, err
		}
	}
	return f, nil
}
