package cast

import (
	"context"
	"fmt"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// KindFor maps a dtype name (pandas spelling or short form) to a column kind.
func KindFor(dtype string) (ds.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(dtype)) {
	case "datetime64", "datetime64[ns]", "datetime", "date", "time":
		return ds.KindTime, nil
	case "int", "int64", "int32", "integer":
		return ds.KindInt, nil
	case "float", "float64", "float32", "double":
		return ds.KindFloat, nil
	case "str", "string", "object", "category":
		return ds.KindString, nil
	case "bool", "boolean":
		return ds.KindBool, nil
	}
	return ds.KindInvalid, fmt.Errorf("unknown dtype %q", dtype)
}

// Cast converts Column to Type. Cells that cannot be converted become null.
type Cast struct {
	Column   string
	Type     string
	DayFirst bool
}

func (t *Cast) Name() string { return "cast" }

func (t *Cast) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	k, err := KindFor(t.Type)
	if err != nil {
		return f, fmt.Errorf("cast %s: %w", t.Column, err)
	}
	src, ok := f.ColumnByName(t.Column)
	if !ok || src.Kind() == k {
		return f, nil
	}
	dst, err := ds.NewColumn(t.Column, k, src.Len())
	if err != nil {
		return f, err
	}
	for i := 0; i < src.Len(); i++ {
		if src.IsNull(i) {
			continue
		}
		convert(src, dst, i, t.DayFirst)
	}
	return f, f.SetColumn(dst)
}

func convert(src, dst ds.Column, i int, dayFirst bool) {
	switch d := dst.(type) {
	case *ds.TimeColumn:
		if v, ok := ds.TimeAt(src, i, dayFirst); ok {
			d.Set(i, v)
		}
	case *ds.StringColumn:
		if v, ok := ds.StringAt(src, i); ok {
			d.Set(i, v)
		}
	case *ds.FloatColumn:
		if v, ok := ds.FloatAt(src, i); ok {
			d.Set(i, v)
		} else if s, ok := src.(*ds.StringColumn); ok {
			raw, _ := s.Get(i)
			if pv, ok := ds.ParseValue(ds.KindFloat, raw); ok {
				d.Set(i, pv.(float64))
			}
		}
	case *ds.IntColumn:
		if v, ok := ds.FloatAt(src, i); ok {
			d.Set(i, int64(v))
		} else if s, ok := src.(*ds.StringColumn); ok {
			raw, _ := s.Get(i)
			if pv, ok := ds.ParseValue(ds.KindInt, raw); ok {
				d.Set(i, pv.(int64))
			}
		}
	case *ds.BoolColumn:
		if v, ok := ds.FloatAt(src, i); ok {
			d.Set(i, v != 0)
		} else if s, ok := src.(*ds.StringColumn); ok {
			raw, _ := s.Get(i)
			if pv, ok := ds.ParseValue(ds.KindBool, raw); ok {
				d.Set(i, pv.(bool))
			}
		}
	}
}
