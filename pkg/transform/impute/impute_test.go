package impute

import (
	"context"
	"testing"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// x: 1, null, 3, null, null   s: a, b, b, null, null
func makeFrame() *ds.Frame {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "x", Type: ds.KindFloat, Nullable: true},
		{Name: "n", Type: ds.KindInt, Nullable: true},
		{Name: "s", Type: ds.KindString, Nullable: true},
	}}
	f := ds.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "x", 1.0)
	_ = f.SetCell(2, "x", 3.0)
	_ = f.SetCell(0, "n", int64(1))
	_ = f.SetCell(1, "n", int64(2))
	_ = f.SetCell(0, "s", "a")
	_ = f.SetCell(1, "s", "b")
	_ = f.SetCell(2, "s", "b")
	return f
}

func floats(t *testing.T, f *ds.Frame, name string) *ds.FloatColumn {
	t.Helper()
	col, _ := f.ColumnByName(name)
	return col.(*ds.FloatColumn)
}

func assertNoNulls(t *testing.T, c ds.Column) {
	t.Helper()
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			t.Fatalf("%s: imputer left null at row %d", c.Name(), i)
		}
	}
}

func TestConstant(t *testing.T) {
	f := makeFrame()
	if _, err := (&Constant{Column: "x", Value: 2.5}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	c := floats(t, f, "x")
	assertNoNulls(t, c)
	if v, _ := c.Get(1); v != 2.5 {
		t.Fatalf("want 2.5, got %v", v)
	}
	// config files hand over text; it is parsed for numeric columns
	if _, err := (&Constant{Column: "n", Value: "7"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("n")
	if v, _ := col.(*ds.IntColumn).Get(4); v != 7 {
		t.Fatalf("want 7, got %d", v)
	}
	if _, err := (&Constant{Column: "s", Value: "Unknown"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ = f.ColumnByName("s")
	if v, _ := col.(*ds.StringColumn).Get(3); v != "Unknown" {
		t.Fatalf("want Unknown, got %q", v)
	}
	if _, err := (&Constant{Column: "x", Value: "abc"}).Apply(context.Background(), makeFrame()); err == nil {
		t.Fatal("expected error for unparseable fill value")
	}
}

func TestMean(t *testing.T) {
	f := makeFrame()
	if _, err := (&Mean{Column: "x"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	c := floats(t, f, "x")
	assertNoNulls(t, c)
	if v, _ := c.Get(4); v != 2 {
		t.Fatalf("want mean 2, got %v", v)
	}
	if _, err := (&Mean{Column: "n"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("n")
	if v, _ := col.(*ds.IntColumn).Get(3); v != 2 {
		t.Fatalf("want rounded mean 2, got %d", v)
	}
}

func TestMedian(t *testing.T) {
	f := makeFrame()
	_ = f.SetCell(3, "x", 10.0)
	if _, err := (&Median{Column: "x"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	c := floats(t, f, "x")
	assertNoNulls(t, c)
	if v, _ := c.Get(4); v != 3 {
		t.Fatalf("want median 3, got %v", v)
	}
}

func TestMode(t *testing.T) {
	f := makeFrame()
	if _, err := (&Mode{Column: "s"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("s")
	c := col.(*ds.StringColumn)
	assertNoNulls(t, c)
	if v, _ := c.Get(4); v != "b" {
		t.Fatalf("want mode b, got %q", v)
	}
	if _, err := (&Mode{Column: "x"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	assertNoNulls(t, floats(t, f, "x"))
}

func TestMissingColumnIsNoop(t *testing.T) {
	f := makeFrame()
	for _, tf := range []ds.Transform{&Mean{Column: "zz"}, &Median{Column: "zz"}, &Mode{Column: "zz"}, &Constant{Column: "zz", Value: 1}} {
		if _, err := tf.Apply(context.Background(), f); err != nil {
			t.Fatalf("%s: %v", tf.Name(), err)
		}
	}
}

func TestFromStrategy(t *testing.T) {
	cases := map[string]string{
		"fillna": "impute_constant",
		"MEAN":   "impute_mean",
		"median": "impute_median",
		"mode":   "impute_mode",
	}
	for method, want := range cases {
		tf, err := FromStrategy("x", method, "0")
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if tf.Name() != want {
			t.Fatalf("%s: got %s, want %s", method, tf.Name(), want)
		}
	}
	if _, err := FromStrategy("x", "fillna", nil); err == nil {
		t.Fatal("fillna without value must fail")
	}
	if _, err := FromStrategy("x", "interpolate", nil); err == nil {
		t.Fatal("unknown strategy must fail")
	}
}

func BenchmarkImputeMean(b *testing.B) {
	s := ds.Schema{Columns: []ds.ColumnSchema{{Name: "x", Type: ds.KindFloat, Nullable: true}}}
	base := ds.NewFrame(s)
	for i := 0; i < 10000; i++ {
		base.AppendNullRow()
		if i%2 == 0 {
			_ = base.SetCell(i, "x", float64(i%10))
		}
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f := base.Clone()
		if _, err := (&Mean{Column: "x"}).Apply(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}
