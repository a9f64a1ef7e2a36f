package csvio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

const admissionsCSV = `Name,Age,Billing Amount,Date of Admission,Discharge Date,Insured
Ann,34,1200.5,2024-01-01,2024-01-05,true
Bo,NA,980,2024-02-10,2024-02-11,false
Cy,51,,03/04/2024,03/09/2024,true
`

func writeTemp(t testing.TB, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func readAll(t *testing.T, path string, opt ReaderOptions) *ds.Frame {
	t.Helper()
	r, err := Open(path, opt)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	return fr
}

func TestInferAndRead(t *testing.T) {
	fr := readAll(t, writeTemp(t, "admissions.csv", admissionsCSV), ReaderOptions{HasHeader: true})
	if fr.Rows() != 3 || fr.Cols() != 6 {
		t.Fatalf("expected 3x6 frame, got %dx%d", fr.Rows(), fr.Cols())
	}
	want := []ds.Kind{ds.KindString, ds.KindInt, ds.KindFloat, ds.KindString, ds.KindString, ds.KindBool}
	for i, cs := range fr.Schema().Columns {
		if cs.Type != want[i] {
			t.Errorf("column %s: expected %v, got %v", cs.Name, want[i], cs.Type)
		}
	}
	age, _ := fr.ColumnByName("Age")
	if !age.IsNull(1) {
		t.Fatal("NA should read as null")
	}
	amount, _ := fr.ColumnByName("Billing Amount")
	if !amount.IsNull(2) {
		t.Fatal("empty cell should read as null")
	}
	if v, ok := fr.Value(0, "Billing Amount"); !ok || v.(float64) != 1200.5 {
		t.Fatalf("unexpected amount %v", v)
	}
}

func TestParseDates(t *testing.T) {
	p := writeTemp(t, "admissions.csv", admissionsCSV)
	fr := readAll(t, p, ReaderOptions{HasHeader: true, ParseDates: true, DayFirst: true})
	c, _ := fr.ColumnByName("Date of Admission")
	tc, ok := c.(*ds.TimeColumn)
	if !ok {
		t.Fatalf("expected a time column, got %v", c.Kind())
	}
	got, _ := tc.Get(2)
	if want := time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("day first: expected %v, got %v", want, got)
	}
	// numbers never become dates
	if k := fr.Schema().Columns[1].Type; k != ds.KindInt {
		t.Fatalf("Age should stay int, got %v", k)
	}
}

func TestSniffDelimiter(t *testing.T) {
	body := strings.ReplaceAll(admissionsCSV, ",", ";")
	fr := readAll(t, writeTemp(t, "semi.csv", body), ReaderOptions{HasHeader: true})
	if fr.Cols() != 6 {
		t.Fatalf("expected 6 columns, got %v", fr.Names())
	}
}

func TestNoHeader(t *testing.T) {
	fr := readAll(t, writeTemp(t, "raw.csv", "1,a\n2,b\n"), ReaderOptions{})
	if fr.Rows() != 2 || fr.Names()[0] != "col_0" {
		t.Fatalf("unexpected frame %v rows=%d", fr.Names(), fr.Rows())
	}
}

func TestStrictRejectsShortRecords(t *testing.T) {
	p := writeTemp(t, "short.csv", "a,b\n1,2\n3\n")
	r, err := Open(p, ReaderOptions{HasHeader: true, Strict: true, Delimiter: ','})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadAll(schema); err == nil {
		t.Fatal("expected strict mode to fail")
	}
}

func TestLenientCountsRepairs(t *testing.T) {
	p := writeTemp(t, "short.csv", "a,b\n1,2\n3\n4,5,6\n")
	r, err := Open(p, ReaderOptions{HasHeader: true, Delimiter: ','})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	schema, _ := r.InferSchema()
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", fr.Rows())
	}
	if w := r.Warnings(); w != "short_records=1, long_records=1" {
		t.Fatalf("unexpected warnings %q", w)
	}
}

func TestWriteReadRoundTripGzip(t *testing.T) {
	src := readAll(t, writeTemp(t, "admissions.csv", admissionsCSV), ReaderOptions{HasHeader: true})
	out := filepath.Join(t.TempDir(), "out.csv.gz")
	if err := WriteAll(out, src, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	back := readAll(t, out, ReaderOptions{HasHeader: true})
	if back.Rows() != src.Rows() || strings.Join(back.Names(), ",") != strings.Join(src.Names(), ",") {
		t.Fatalf("round trip changed shape: %v", back.Names())
	}
	age, _ := back.ColumnByName("Age")
	if !age.IsNull(1) {
		t.Fatal("null should survive the round trip")
	}
}

func TestStreamReadWrite(t *testing.T) {
	p := writeTemp(t, "admissions.csv", admissionsCSV)
	sr, err := NewStreamReader(p, ReaderOptions{HasHeader: true}, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sr.Close() }()
	out := filepath.Join(t.TempDir(), "stream.csv")
	sw, err := NewStreamWriter(out, WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	chunks := 0
	for {
		fr, err := sr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		chunks++
		if err := sw.Write(fr); err != nil {
			t.Fatal(err)
		}
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}
	if chunks != 2 {
		t.Fatalf("expected 2 chunks, got %d", chunks)
	}
	back := readAll(t, out, ReaderOptions{HasHeader: true})
	if back.Rows() != 3 {
		t.Fatalf("expected 3 rows written, got %d", back.Rows())
	}
}

func BenchmarkReadAll(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("id,amount,Date of Admission\n")
	for i := 0; i < 5000; i++ {
		sb.WriteString("1,2.5,2024-01-01\n")
	}
	p := writeTemp(b, "bench.csv", sb.String())
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r, err := Open(p, ReaderOptions{HasHeader: true})
		if err != nil {
			b.Fatal(err)
		}
		schema, err := r.InferSchema()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := r.ReadAll(schema); err != nil {
			b.Fatal(err)
		}
		_ = r.Close()
	}
}
