package dataset

import (
	"fmt"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Numeric reports whether values of the kind can be read as float64.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat || k == KindBool }

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	AppendNull()
	// Clone returns a deep copy under the given name.
	Clone(name string) Column
	// Permute reorders the cells so that cell i takes the value previously at order[i].
	Permute(order []int)
	// Take returns a new column holding the cells at rows, in that order.
	Take(rows []int) Column
}

// Vector is the storage behind every concrete column type.
type Vector[T any] struct {
	name  string
	kind  Kind
	data  []T
	nulls []bool
}

type (
	BoolColumn   = Vector[bool]
	IntColumn    = Vector[int64]
	FloatColumn  = Vector[float64]
	StringColumn = Vector[string]
	TimeColumn   = Vector[time.Time]
)

func newVector[T any](name string, k Kind, n int) *Vector[T] {
	nulls := make([]bool, n)
	for i := range nulls {
		nulls[i] = true
	}
	return &Vector[T]{name: name, kind: k, data: make([]T, n), nulls: nulls}
}

// The constructors below return columns of n null cells.

func NewBoolColumn(name string, n int) *BoolColumn     { return newVector[bool](name, KindBool, n) }
func NewIntColumn(name string, n int) *IntColumn       { return newVector[int64](name, KindInt, n) }
func NewFloatColumn(name string, n int) *FloatColumn   { return newVector[float64](name, KindFloat, n) }
func NewStringColumn(name string, n int) *StringColumn { return newVector[string](name, KindString, n) }
func NewTimeColumn(name string, n int) *TimeColumn     { return newVector[time.Time](name, KindTime, n) }

// NewColumn builds an all-null column of the given kind.
func NewColumn(name string, k Kind, n int) (Column, error) {
	switch k {
	case KindBool:
		return NewBoolColumn(name, n), nil
	case KindInt:
		return NewIntColumn(name, n), nil
	case KindFloat:
		return NewFloatColumn(name, n), nil
	case KindString:
		return NewStringColumn(name, n), nil
	case KindTime:
		return NewTimeColumn(name, n), nil
	default:
		return nil, fmt.Errorf("column %s: invalid kind %v", name, k)
	}
}

func (c *Vector[T]) Name() string        { return c.name }
func (c *Vector[T]) Kind() Kind          { return c.kind }
func (c *Vector[T]) Len() int            { return len(c.data) }
func (c *Vector[T]) IsNull(i int) bool   { return c.nulls[i] }
func (c *Vector[T]) Get(i int) (T, bool) { return c.data[i], !c.nulls[i] }
func (c *Vector[T]) Set(i int, v T)      { c.data[i] = v; c.nulls[i] = false }
func (c *Vector[T]) Append(v T)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

func (c *Vector[T]) SetNull(i int) {
	var zero T
	c.data[i] = zero
	c.nulls[i] = true
}

func (c *Vector[T]) AppendNull() {
	var zero T
	c.data = append(c.data, zero)
	c.nulls = append(c.nulls, true)
}

// NullCount returns the number of null cells.
func (c *Vector[T]) NullCount() (n int) {
	for _, isNull := range c.nulls {
		if isNull {
			n++
		}
	}
	return n
}

func (c *Vector[T]) Clone(name string) Column {
	out := &Vector[T]{name: name, kind: c.kind, data: make([]T, len(c.data)), nulls: make([]bool, len(c.nulls))}
	copy(out.data, c.data)
	copy(out.nulls, c.nulls)
	return out
}

func (c *Vector[T]) Permute(order []int) {
	data := make([]T, len(c.data))
	nulls := make([]bool, len(c.nulls))
	for i, src := range order {
		data[i] = c.data[src]
		nulls[i] = c.nulls[src]
	}
	c.data, c.nulls = data, nulls
}

func (c *Vector[T]) Take(rows []int) Column {
	out := &Vector[T]{name: c.name, kind: c.kind, data: make([]T, len(rows)), nulls: make([]bool, len(rows))}
	for i, src := range rows {
		out.data[i] = c.data[src]
		out.nulls[i] = c.nulls[src]
	}
	return out
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: Schema{Columns: append([]ColumnSchema(nil), s.Columns...)}, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		c, err := NewColumn(cs.Name, cs.Type, 0)
		if err != nil {
			panic(err)
		}
		f.cols[i] = c
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }
func (f *Frame) Names() []string {
	return f.schema.Names()
}

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// SetColumn adds c, or replaces the column of the same name in place.
// The column length must match the frame's row count unless the frame has no columns.
func (f *Frame) SetColumn(c Column) error {
	if len(f.cols) == 0 {
		f.nrows = c.Len()
	} else if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	cs := ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
	if i, ok := f.index[c.Name()]; ok {
		f.cols[i] = c
		f.schema.Columns = append([]ColumnSchema(nil), f.schema.Columns...)
		f.schema.Columns[i] = cs
		return nil
	}
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	f.schema.Columns = append(f.schema.Columns, cs)
	return nil
}

// DropColumn removes the named column and reports whether it existed.
func (f *Frame) DropColumn(name string) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	// fresh slices so schemas handed out earlier keep their shape
	f.cols = append(append(make([]Column, 0, len(f.cols)-1), f.cols[:i]...), f.cols[i+1:]...)
	f.schema.Columns = append(append(make([]ColumnSchema, 0, len(f.cols)), f.schema.Columns[:i]...), f.schema.Columns[i+1:]...)
	delete(f.index, name)
	for n, idx := range f.index {
		if idx > i {
			f.index[n] = idx - 1
		}
	}
	return true
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{schema: Schema{Columns: append([]ColumnSchema(nil), f.schema.Columns...)}, cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.index)), nrows: f.nrows}
	for i, c := range f.cols {
		out.cols[i] = c.Clone(c.Name())
	}
	for n, i := range f.index {
		out.index[n] = i
	}
	return out
}

// Take returns a new frame with the given rows, in that order.
func (f *Frame) Take(rows []int) *Frame {
	out := &Frame{schema: Schema{Columns: append([]ColumnSchema(nil), f.schema.Columns...)}, cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.index)), nrows: len(rows)}
	for i, c := range f.cols {
		out.cols[i] = c.Take(rows)
	}
	for n, i := range f.index {
		out.index[n] = i
	}
	return out
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		c.AppendNull()
	}
	f.nrows++
}

// Value returns the cell at row as a plain Go value, or false when the cell is null.
func (f *Frame) Value(row int, name string) (any, bool) {
	c, ok := f.ColumnByName(name)
	if !ok {
		return nil, false
	}
	switch col := c.(type) {
	case *BoolColumn:
		return col.Get(row)
	case *IntColumn:
		return col.Get(row)
	case *FloatColumn:
		return col.Get(row)
	case *StringColumn:
		return col.Get(row)
	case *TimeColumn:
		return col.Get(row)
	}
	return nil, false
}

// Record returns row as a map of non-null cells.
func (f *Frame) Record(row int) map[string]any {
	m := make(map[string]any, len(f.cols))
	for _, cs := range f.schema.Columns {
		if v, ok := f.Value(row, cs.Name); ok {
			m[cs.Name] = v
		}
	}
	return m
}

// SetCell sets a single cell value by name (row must exist).
// Strings given to non-string columns are parsed with ParseValue.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	if s, isStr := v.(string); isStr && c.Kind() != KindString {
		pv, ok := ParseValue(c.Kind(), s)
		if !ok {
			c.SetNull(row)
			return nil
		}
		v = pv
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int32:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		case bool:
			col.Set(row, boolToInt(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int32:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// AppendRecord appends a row built from m; keys without a column are ignored.
func (f *Frame) AppendRecord(m map[string]any) error {
	f.AppendNullRow()
	row := f.nrows - 1
	for name, v := range m {
		if !f.HasColumn(name) {
			continue
		}
		if err := f.SetCell(row, name, v); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
