package scale

import (
	"context"
	"math"
	"testing"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

func TestStandard(t *testing.T) {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "Albumin", Type: ds.KindFloat, Nullable: true},
		{Name: "Stage", Type: ds.KindInt, Nullable: true},
		{Name: "Flat", Type: ds.KindInt, Nullable: true},
		{Name: "Status", Type: ds.KindString, Nullable: true},
	}}
	f := ds.NewFrame(s)
	for i, v := range []any{1.0, 2.0, 3.0, nil} {
		f.AppendNullRow()
		_ = f.SetCell(i, "Albumin", v)
		_ = f.SetCell(i, "Stage", int64(i))
		_ = f.SetCell(i, "Flat", int64(5))
		_ = f.SetCell(i, "Status", "C")
	}
	if _, err := (&Standard{Exclude: []string{"Stage"}}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("Albumin")
	c := col.(*ds.FloatColumn)
	for i, want := range []float64{-1, 0, 1} {
		if v, _ := c.Get(i); math.Abs(v-want) > 1e-9 {
			t.Fatalf("row %d: got %v, want %v", i, v, want)
		}
	}
	if !c.IsNull(3) {
		t.Fatal("null must stay null")
	}
	if k := f.Schema().Columns[1].Type; k != ds.KindInt {
		t.Fatalf("excluded column changed kind to %v", k)
	}
	flat, _ := f.ColumnByName("Flat")
	if v, _ := flat.(*ds.FloatColumn).Get(0); v != 0 {
		t.Fatalf("constant column should scale to 0, got %v", v)
	}
}
