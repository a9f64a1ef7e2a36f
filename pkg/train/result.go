package train

import (
	"math"
	"strconv"

	"github.com/sjwhitworth/golearn/base"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// PredictionColumn names the column written by PredictionFrame.
const PredictionColumn = "prediction"

// Labels returns the predicted class of every test row. Encoded targets are
// decoded back to their original values.
func (r *Result) Labels() []string {
	if r.Predictions == nil {
		return nil
	}
	_, n := r.Predictions.Size()
	out := make([]string, n)
	for i := range out {
		v := base.GetClass(r.Predictions, i)
		if len(r.Classes) > 0 {
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				if idx := int(math.Round(x)); idx >= 0 && idx < len(r.Classes) {
					v = r.Classes[idx]
				}
			}
		}
		out[i] = v
	}
	return out
}

// PredictionFrame returns the predictions as a single string column.
func (r *Result) PredictionFrame() *ds.Frame {
	labels := r.Labels()
	f := ds.NewFrame(ds.Schema{Columns: []ds.ColumnSchema{{Name: PredictionColumn, Type: ds.KindString}}})
	for _, l := range labels {
		f.AppendNullRow()
		_ = f.SetCell(f.Rows()-1, PredictionColumn, l)
	}
	return f
}
