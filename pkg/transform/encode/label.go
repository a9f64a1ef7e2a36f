package encode

import (
	"context"
	"sort"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Label replaces the categories of Column with dense integer codes assigned in
// sorted order. Nulls stay null. Classes holds the categories after Apply.
type Label struct {
	Column  string
	Classes []string
}

func (t *Label) Name() string { return "label_encode" }

func (t *Label) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	t.Classes = categories(col)
	codes := make(map[string]int64, len(t.Classes))
	for i, c := range t.Classes {
		codes[c] = int64(i)
	}
	out := ds.NewIntColumn(t.Column, col.Len())
	for i := 0; i < col.Len(); i++ {
		if v, ok := ds.StringAt(col, i); ok {
			out.Set(i, codes[v])
		}
	}
	return f, f.SetColumn(out)
}

// categories returns the distinct non-null values of col, sorted.
func categories(col ds.Column) []string {
	seen := map[string]struct{}{}
	for i := 0; i < col.Len(); i++ {
		if v, ok := ds.StringAt(col, i); ok {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
