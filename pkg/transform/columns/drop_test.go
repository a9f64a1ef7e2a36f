package columns

import (
	"context"
	"testing"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

func frame() *ds.Frame {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "Age", Type: ds.KindInt, Nullable: true},
		{Name: "Drug", Type: ds.KindString, Nullable: true},
		{Name: "Bilirubin", Type: ds.KindFloat, Nullable: true},
		{Name: "Status", Type: ds.KindString, Nullable: true},
		{Name: "Seen", Type: ds.KindTime, Nullable: true},
	}}
	f := ds.NewFrame(s)
	f.AppendNullRow()
	return f
}

func TestDrop(t *testing.T) {
	f := frame()
	if _, err := (&Drop{Columns: []string{"Age", "NotThere"}}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if f.HasColumn("Age") || f.Cols() != 4 {
		t.Fatalf("unexpected columns %v", f.Names())
	}
}

func TestKeepNumeric(t *testing.T) {
	f := frame()
	if _, err := (&KeepNumeric{Keep: []string{"Status"}}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	got := f.Names()
	want := []string{"Age", "Bilirubin", "Status"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
