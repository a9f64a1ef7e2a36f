package impute

import (
	"context"
	"fmt"
	"strconv"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Constant fills nulls with a fixed value (pandas fillna).
type Constant struct {
	Column string
	// coerced per column kind; text is parsed for non-string columns
	Value any
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	v, err := coerce(col.Kind(), t.Value)
	if err != nil {
		return f, fmt.Errorf("impute_constant %s: %w", t.Column, err)
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			if err := f.SetCell(i, t.Column, v); err != nil {
				return f, err
			}
		}
	}
	return f, nil
}

func coerce(k ds.Kind, v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("no fill value")
	}
	if k == ds.KindString {
		switch t := v.(type) {
		case string:
			return t, nil
		case float64:
			return strconv.FormatFloat(t, 'g', -1, 64), nil
		default:
			return fmt.Sprint(t), nil
		}
	}
	if s, ok := v.(string); ok {
		pv, ok := ds.ParseValue(k, s)
		if !ok {
			return nil, fmt.Errorf("cannot use %q as %v", s, k)
		}
		return pv, nil
	}
	switch k {
	case ds.KindFloat:
		switch t := v.(type) {
		case int:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case float64:
			return t, nil
		}
	case ds.KindInt:
		switch t := v.(type) {
		case int:
			return int64(t), nil
		case int64:
			return t, nil
		case float64:
			return int64(t), nil
		}
	case ds.KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	default:
		return v, nil
	}
	return nil, fmt.Errorf("cannot use %v (%T) as %v", v, v, k)
}
