// Command benchfeatures measures streaming throughput of feature engineering
// and imputation over generated admission records.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/logger"
	"github.com/wdm0006/trainkit/pkg/transform/impute"
	"github.com/wdm0006/trainkit/pkg/transform/standardize"
)

var schema = ds.Schema{Columns: []ds.ColumnSchema{
	{Name: "Gender", Type: ds.KindString, Nullable: true},
	{Name: "Billing Amount", Type: ds.KindFloat, Nullable: true},
	{Name: "Room Number", Type: ds.KindInt, Nullable: true},
	{Name: features.AdmissionDateColumn, Type: ds.KindString, Nullable: true},
	{Name: features.DischargeDateColumn, Type: ds.KindString, Nullable: true},
}}

// admissionSource generates chunks of admission records with dates as text.
type admissionSource struct {
	remain int
	chunk  int
	missp  float64
	rnd    *rand.Rand
	start  time.Time
}

func (g *admissionSource) Next() (*ds.Frame, error) {
	if g.remain <= 0 {
		return nil, io.EOF
	}
	n := min(g.chunk, g.remain)
	g.remain -= n
	f := ds.NewFrame(schema)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		if g.rnd.Float64() >= g.missp {
			_ = f.SetCell(i, "Gender", []string{" Male", "Female "}[g.rnd.Intn(2)])
		}
		if g.rnd.Float64() >= g.missp {
			_ = f.SetCell(i, "Billing Amount", g.rnd.Float64()*50000)
		}
		if g.rnd.Float64() >= g.missp {
			_ = f.SetCell(i, "Room Number", int64(100+g.rnd.Intn(400)))
		}
		admitted := g.start.AddDate(0, 0, g.rnd.Intn(1500))
		if g.rnd.Float64() >= g.missp {
			_ = f.SetCell(i, features.AdmissionDateColumn, admitted.Format(time.DateOnly))
		}
		_ = f.SetCell(i, features.DischargeDateColumn, admitted.AddDate(0, 0, 1+g.rnd.Intn(30)).Format(time.DateOnly))
	}
	return f, nil
}

type blackholeSink struct{ rows int }

func (b *blackholeSink) Write(f *ds.Frame) error { b.rows += f.Rows(); return nil }
func (b *blackholeSink) Close() error            { return nil }

func main() {
	var (
		rows    = pflag.Int("rows", 1_000_000, "Total rows to generate")
		chunk   = pflag.Int("chunk", 100_000, "Rows per chunk")
		missp   = pflag.Float64("missing", 0.05, "Probability of a missing value in each cell")
		jsonOut = pflag.Bool("json", false, "Print the summary as JSON")
		seed    = pflag.Int64("seed", 42, "Random seed")
	)
	pflag.Parse()
	log := logger.NewLogger(nil)

	p := ds.NewPipeline().
		Add(&standardize.Trim{Columns: []string{"Gender"}}).
		Add(&impute.Mean{Column: "Billing Amount"}).
		Add(&impute.Median{Column: "Room Number"}).
		Add(&impute.Mode{Column: "Gender"}).
		Add(&features.Step{Operation: features.CalculateTotalDays})

	src := &admissionSource{
		remain: *rows,
		chunk:  *chunk,
		missp:  *missp,
		rnd:    rand.New(rand.NewSource(*seed)),
		start:  time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	sink := &blackholeSink{}

	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	if err := ds.RunStream(context.Background(), p, src, sink); err != nil {
		log.Error("Benchmark failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	rowsPerSec := float64(sink.rows) / elapsed.Seconds()
	if *jsonOut {
		b, _ := json.MarshalIndent(map[string]any{
			"rows":                  sink.rows,
			"chunk":                 *chunk,
			"missing_prob":          *missp,
			"steps":                 p.Steps(),
			"elapsed_ms":            elapsed.Milliseconds(),
			"rows_per_sec":          rowsPerSec,
			"mem_alloc_bytes":       after.Alloc,
			"mem_total_alloc_bytes": after.TotalAlloc - before.TotalAlloc,
			"gc_num":                after.NumGC - before.NumGC,
		}, "", "  ")
		fmt.Println(string(b))
		return
	}
	log.Info("Benchmark finished",
		"rows", sink.rows,
		"elapsed", elapsed,
		"rows_per_sec", fmt.Sprintf("%.0f", rowsPerSec),
		"alloc_mb", after.Alloc/1024/1024,
		"total_alloc_mb", (after.TotalAlloc-before.TotalAlloc)/1024/1024,
		"gc", after.NumGC-before.NumGC,
	)
}
