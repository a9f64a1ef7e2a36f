// Package profile summarises the columns of a dataset, chunk by chunk.
package profile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// NumStats describes a numeric column. Mean and Std are filled by Report.
type NumStats struct {
	Count int     `json:"count" yaml:"count"`
	Nulls int     `json:"nulls" yaml:"nulls"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Std   float64 `json:"std" yaml:"std"`
	Min   float64 `json:"min" yaml:"min"`
	Q25   float64 `json:"q25" yaml:"q25"`
	Q50   float64 `json:"q50" yaml:"q50"`
	Q75   float64 `json:"q75" yaml:"q75"`
	Max   float64 `json:"max" yaml:"max"`
}

type BoolStats struct {
	Count int `json:"count" yaml:"count"`
	Nulls int `json:"nulls" yaml:"nulls"`
	True  int `json:"true" yaml:"true"`
	False int `json:"false" yaml:"false"`
}

type TimeStats struct {
	Count int       `json:"count" yaml:"count"`
	Nulls int       `json:"nulls" yaml:"nulls"`
	Min   time.Time `json:"min" yaml:"min"`
	Max   time.Time `json:"max" yaml:"max"`
}

type Freq struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

type StringStats struct {
	Count  int    `json:"count" yaml:"count"`
	Nulls  int    `json:"nulls" yaml:"nulls"`
	Unique int    `json:"unique" yaml:"unique"`
	Top    []Freq `json:"top,omitempty" yaml:"top,omitempty"`
}

type Column struct {
	Name string       `json:"name" yaml:"name"`
	Kind string       `json:"kind" yaml:"kind"`
	Num  *NumStats    `json:"num,omitempty" yaml:"num,omitempty"`
	Bool *BoolStats   `json:"bool,omitempty" yaml:"bool,omitempty"`
	Time *TimeStats   `json:"time,omitempty" yaml:"time,omitempty"`
	Str  *StringStats `json:"str,omitempty" yaml:"str,omitempty"`
}

type Report struct {
	Rows    int      `json:"rows" yaml:"rows"`
	Columns []Column `json:"columns" yaml:"columns"`
}

type columnState struct {
	name  string
	kind  ds.Kind
	nulls int
	nums  []float64
	bools [2]int
	times []time.Time
	freqs map[string]int
}

// Collector accumulates column statistics over one or more frames sharing a schema.
type Collector struct {
	cols  []*columnState
	index map[string]int
	rows  int
	topK  int
}

func NewCollector(schema ds.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int, len(schema.Columns)), topK: topK}
	for i, cs := range schema.Columns {
		c.cols = append(c.cols, &columnState{name: cs.Name, kind: cs.Type, freqs: map[string]int{}})
		c.index[cs.Name] = i
	}
	return c
}

// Write consumes a frame; columns outside the collector's schema are ignored.
// Together with Close it lets a Collector act as a stream sink.
func (c *Collector) Write(f *ds.Frame) error {
	c.rows += f.Rows()
	for _, st := range c.cols {
		col, ok := f.ColumnByName(st.name)
		if !ok {
			st.nulls += f.Rows()
			continue
		}
		if col.Kind() != st.kind {
			return fmt.Errorf("profile: column %s changed kind from %v to %v", st.name, st.kind, col.Kind())
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				st.nulls++
				continue
			}
			switch st.kind {
			case ds.KindBool:
				v, _ := col.(*ds.BoolColumn).Get(i)
				if v {
					st.bools[1]++
				} else {
					st.bools[0]++
				}
			case ds.KindInt, ds.KindFloat:
				v, _ := ds.FloatAt(col, i)
				st.nums = append(st.nums, v)
			case ds.KindTime:
				v, _ := col.(*ds.TimeColumn).Get(i)
				st.times = append(st.times, v)
			default:
				v, _ := ds.StringAt(col, i)
				st.freqs[v]++
			}
		}
	}
	return nil
}

func (c *Collector) Close() error { return nil }

// Report computes the summary of everything consumed so far.
func (c *Collector) Report() Report {
	out := Report{Rows: c.rows, Columns: make([]Column, 0, len(c.cols))}
	for _, st := range c.cols {
		col := Column{Name: st.name, Kind: st.kind.String()}
		switch st.kind {
		case ds.KindBool:
			col.Bool = &BoolStats{Count: st.bools[0] + st.bools[1], Nulls: st.nulls, True: st.bools[1], False: st.bools[0]}
		case ds.KindInt, ds.KindFloat:
			col.Num = numStats(st.nums, st.nulls)
		case ds.KindTime:
			ts := &TimeStats{Count: len(st.times), Nulls: st.nulls}
			for i, t := range st.times {
				if i == 0 || t.Before(ts.Min) {
					ts.Min = t
				}
				if i == 0 || t.After(ts.Max) {
					ts.Max = t
				}
			}
			col.Time = ts
		default:
			col.Str = c.stringStats(st)
		}
		out.Columns = append(out.Columns, col)
	}
	return out
}

func numStats(vals []float64, nulls int) *NumStats {
	ns := &NumStats{Count: len(vals), Nulls: nulls}
	if len(vals) == 0 {
		return ns
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	ns.Mean, ns.Std = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		ns.Std = 0
	}
	ns.Min, ns.Max = sorted[0], sorted[len(sorted)-1]
	ns.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	ns.Q50 = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	ns.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return ns
}

func (c *Collector) stringStats(st *columnState) *StringStats {
	ss := &StringStats{Nulls: st.nulls, Unique: len(st.freqs)}
	top := make([]Freq, 0, len(st.freqs))
	for v, n := range st.freqs {
		ss.Count += n
		top = append(top, Freq{Value: v, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Value < top[j].Value
	})
	if c.topK >= 0 && c.topK < len(top) {
		top = top[:c.topK]
	}
	if len(top) > 0 {
		ss.Top = top
	}
	return ss
}

// Text renders the report for terminals.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile Summary (%d rows)\n", r.Rows)
	for _, col := range r.Columns {
		fmt.Fprintf(&b, "- %s (%s): ", col.Name, col.Kind)
		switch {
		case col.Num != nil:
			n := col.Num
			fmt.Fprintf(&b, "count=%d nulls=%d mean=%.6g std=%.6g min=%.6g 25%%=%.6g 50%%=%.6g 75%%=%.6g max=%.6g\n",
				n.Count, n.Nulls, n.Mean, n.Std, n.Min, n.Q25, n.Q50, n.Q75, n.Max)
		case col.Bool != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d true=%d false=%d\n", col.Bool.Count, col.Bool.Nulls, col.Bool.True, col.Bool.False)
		case col.Time != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d min=%s max=%s\n", col.Time.Count, col.Time.Nulls,
				col.Time.Min.Format(time.DateOnly), col.Time.Max.Format(time.DateOnly))
		case col.Str != nil:
			fmt.Fprintf(&b, "count=%d nulls=%d unique=%d\n", col.Str.Count, col.Str.Nulls, col.Str.Unique)
			for _, f := range col.Str.Top {
				fmt.Fprintf(&b, "  • %q: %d\n", f.Value, f.Count)
			}
		}
	}
	return b.String()
}

// Frame profiles a single frame.
func Frame(f *ds.Frame, topK int) Report {
	c := NewCollector(f.Schema(), topK)
	_ = c.Write(f)
	return c.Report()
}
