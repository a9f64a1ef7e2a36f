package encode

import (
	"context"
	"testing"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

func drugs() *ds.Frame {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "Drug", Type: ds.KindString, Nullable: true},
		{Name: "Age", Type: ds.KindInt, Nullable: true},
	}}
	f := ds.NewFrame(s)
	for i, v := range []any{"Placebo", "D-penicillamine", nil, "Placebo"} {
		f.AppendNullRow()
		_ = f.SetCell(i, "Drug", v)
		_ = f.SetCell(i, "Age", int64(40+i))
	}
	return f
}

func TestLabel(t *testing.T) {
	f := drugs()
	l := &Label{Column: "Drug"}
	if _, err := l.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if len(l.Classes) != 2 || l.Classes[0] != "D-penicillamine" {
		t.Fatalf("unexpected classes %v", l.Classes)
	}
	col, _ := f.ColumnByName("Drug")
	c, ok := col.(*ds.IntColumn)
	if !ok {
		t.Fatalf("want int column, got %v", col.Kind())
	}
	want := []struct {
		code int64
		ok   bool
	}{{1, true}, {0, true}, {0, false}, {1, true}}
	for i, w := range want {
		got, ok := c.Get(i)
		if ok != w.ok || (ok && got != w.code) {
			t.Fatalf("row %d: got %d/%v, want %d/%v", i, got, ok, w.code, w.ok)
		}
	}
	if f.Names()[0] != "Drug" {
		t.Fatal("encoded column should keep its position")
	}
}

func TestOneHot(t *testing.T) {
	f := drugs()
	if _, err := (&OneHot{Column: "Drug"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if f.HasColumn("Drug") {
		t.Fatal("source column should be dropped")
	}
	got := f.Names()
	want := []string{"Age", "Drug_D-penicillamine", "Drug_Placebo"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	col, _ := f.ColumnByName("Drug_Placebo")
	c := col.(*ds.IntColumn)
	for i, w := range []int64{1, 0, 0, 1} {
		if v, ok := c.Get(i); !ok || v != w {
			t.Fatalf("row %d: got %d/%v, want %d", i, v, ok, w)
		}
	}
}
