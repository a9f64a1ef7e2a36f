package ioutils

import (
	"io"
	"path/filepath"
	"testing"
)

func TestExt(t *testing.T) {
	cases := map[string]string{
		"a.csv":          ".csv",
		"dir/a.CSV.gz":   ".csv",
		"a.jsonl":        ".jsonl",
		"a.parquet":      ".parquet",
		"no_extension":   "",
		"archive.tar.gz": ".tar",
	}
	for in, want := range cases {
		if got := Ext(in); got != want {
			t.Errorf("Ext(%q) = %q, want %q", in, got, want)
		}
	}
}

func roundTrip(t *testing.T, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	w, err := CreateMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "Date of Admission\n2024-01-01\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := OpenMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "Date of Admission\n2024-01-01\n" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestPlainRoundTrip(t *testing.T) { roundTrip(t, "plain.csv") }
func TestGzipRoundTrip(t *testing.T)  { roundTrip(t, "packed.csv.gz") }
