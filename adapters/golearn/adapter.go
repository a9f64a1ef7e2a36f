// Package golearn converts dataset frames to and from golearn instances.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Every column
// other than class must be numeric (int, float or bool) and free of nulls.
// class becomes the class attribute: categorical with its values taken as
// text, or a float attribute when numericClass is set (the liblinear models
// read class labels as floats).
func ToDenseInstances(f *ds.Frame, class string, numericClass bool) (*base.DenseInstances, error) {
	classCol, ok := f.ColumnByName(class)
	if !ok {
		return nil, fmt.Errorf("class column %q not found", class)
	}
	names := f.Names()
	cols := make([]ds.Column, 0, len(names))
	attrs := make([]base.Attribute, 0, len(names))
	for _, name := range names {
		if name == class {
			continue
		}
		col, _ := f.ColumnByName(name)
		if !col.Kind().Numeric() {
			return nil, fmt.Errorf("column %q is %v; encode or drop it before training", name, col.Kind())
		}
		if n := nullCount(col); n > 0 {
			return nil, fmt.Errorf("column %q has %d missing values; impute before training", name, n)
		}
		cols = append(cols, col)
		attrs = append(attrs, base.NewFloatAttribute(name))
	}
	if n := nullCount(classCol); n > 0 {
		return nil, fmt.Errorf("class column %q has %d missing values", class, n)
	}
	var ca base.Attribute
	if numericClass {
		if !classCol.Kind().Numeric() {
			return nil, fmt.Errorf("class column %q is %v; a numeric class is required", class, classCol.Kind())
		}
		ca = base.NewFloatAttribute(class)
	} else {
		cat := base.NewCategoricalAttribute()
		cat.SetName(class)
		ca = cat
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	classSpec := inst.AddAttribute(ca)
	if err := inst.AddClassAttribute(ca); err != nil {
		return nil, err
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			v, _ := ds.FloatAt(col, r)
			inst.Set(specs[c], r, base.PackFloatToBytes(v))
		}
		if numericClass {
			v, _ := ds.FloatAt(classCol, r)
			inst.Set(classSpec, r, base.PackFloatToBytes(v))
			continue
		}
		label, _ := ds.StringAt(classCol, r)
		inst.Set(classSpec, r, ca.GetSysValFromString(label))
	}
	return inst, nil
}

// FromGrid converts any golearn grid, such as a prediction result, into a Frame.
// Float attributes become float columns and everything else becomes text.
func FromGrid(grid base.FixedDataGrid) (*ds.Frame, error) {
	attrs := grid.AllAttributes()
	schema := ds.Schema{Columns: make([]ds.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := ds.KindString
		if _, ok := a.(*base.FloatAttribute); ok {
			k = ds.KindFloat
		}
		schema.Columns[i] = ds.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := grid.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := ds.NewFrame(schema)
	_, nrows := grid.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			raw := grid.Get(specs[c], r)
			var err error
			if cs.Type == ds.KindFloat {
				err = f.SetCell(r, cs.Name, base.UnpackBytesToFloat(raw))
			} else {
				err = f.SetCell(r, cs.Name, attrs[c].GetStringFromSysVal(raw))
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func nullCount(c ds.Column) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}
