package dataset_test

import (
	"context"
	"errors"
	"io"
	"testing"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/transform/impute"
	"github.com/wdm0006/trainkit/pkg/transform/standardize"
)

func makeFrame(rows int) *ds.Frame {
	s := ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "a", Type: ds.KindFloat, Nullable: true},
		{Name: "b", Type: ds.KindInt, Nullable: true},
		{Name: "s", Type: ds.KindString, Nullable: true},
	}}
	f := ds.NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "a", float64(i%100))
		_ = f.SetCell(i, "b", int64(i%10))
		_ = f.SetCell(i, "s", "x")
	}
	return f
}

type noopTransform struct{}

func (noopTransform) Name() string                                            { return "noop" }
func (noopTransform) Apply(_ context.Context, f *ds.Frame) (*ds.Frame, error) { return f, nil }

type failing struct{ err error }

func (failing) Name() string                                          { return "failing" }
func (t failing) Apply(context.Context, *ds.Frame) (*ds.Frame, error) { return nil, t.err }

func TestPipeline(t *testing.T) {
	f := ds.NewFrame(ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "x", Type: ds.KindFloat, Nullable: true},
		{Name: "s", Type: ds.KindString, Nullable: true},
	}})
	f.AppendNullRow()
	f.AppendNullRow()
	_ = f.SetCell(0, "x", 1.0)
	_ = f.SetCell(0, "s", " Foo ")

	p := ds.NewPipeline().Add(&impute.Mean{Column: "x"}).Add(&standardize.Trim{Columns: []string{"s"}})
	if got := p.Steps(); len(got) != 2 || got[0] != "impute_mean" || got[1] != "trim_whitespace" {
		t.Fatalf("unexpected steps %v", got)
	}
	out, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := out.Value(1, "x"); !ok || v != 1.0 {
		t.Fatalf("imputer failed to fill null, got %v", v)
	}
	if v, _ := out.Value(0, "s"); v != "Foo" {
		t.Fatalf("trim failed, got %q", v)
	}
}

func TestPipelineStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	p := ds.NewPipeline().Add(failing{boom}).Add(noopTransform{})
	_, err := p.Run(context.Background(), makeFrame(1))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if err.Error() != "failing: boom" {
		t.Fatalf("step name missing from %q", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ds.NewPipeline().Add(noopTransform{}).Run(ctx, makeFrame(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type chunks struct{ left []*ds.Frame }

func (c *chunks) Next() (*ds.Frame, error) {
	if len(c.left) == 0 {
		return nil, io.EOF
	}
	f := c.left[0]
	c.left = c.left[1:]
	return f, nil
}

type collect struct {
	rows   int
	closed bool
}

func (c *collect) Write(f *ds.Frame) error { c.rows += f.Rows(); return nil }
func (c *collect) Close() error            { c.closed = true; return nil }

func TestRunStream(t *testing.T) {
	sink := &collect{}
	src := &chunks{left: []*ds.Frame{makeFrame(3), makeFrame(2)}}
	if err := ds.RunStream(context.Background(), ds.NewPipeline().Add(noopTransform{}), src, sink); err != nil {
		t.Fatal(err)
	}
	if sink.rows != 5 || !sink.closed {
		t.Fatalf("got %d rows, closed=%v", sink.rows, sink.closed)
	}

	sink = &collect{}
	src = &chunks{left: []*ds.Frame{makeFrame(3)}}
	err := ds.RunStream(context.Background(), ds.NewPipeline().Add(failing{io.ErrUnexpectedEOF}), src, sink)
	if !errors.Is(err, io.ErrUnexpectedEOF) || !sink.closed {
		t.Fatalf("expected failure with closed sink, got %v closed=%v", err, sink.closed)
	}
}

func BenchmarkPipeline(b *testing.B) {
	f := makeFrame(100000)
	p := ds.NewPipeline().Add(noopTransform{}).Add(noopTransform{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(context.Background(), f)
	}
}
