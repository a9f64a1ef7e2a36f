package train

import (
	"context"
	"fmt"
	"sort"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/options"
	"github.com/wdm0006/trainkit/pkg/transform/cast"
	"github.com/wdm0006/trainkit/pkg/transform/columns"
	"github.com/wdm0006/trainkit/pkg/transform/encode"
	"github.com/wdm0006/trainkit/pkg/transform/impute"
	"github.com/wdm0006/trainkit/pkg/transform/scale"
	"github.com/wdm0006/trainkit/pkg/transform/standardize"
)

// Run log categories written during a run.
const (
	CategoryDataProcessing = "data_processing"
	CategoryTraining       = "training"
	CategoryEvaluation     = "evaluation"
)

// logged reports a successful step to the run log.
type logged struct {
	ds.Transform
	log          features.Logger
	subcomponent string
	message      string
}

func (l *logged) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	out, err := l.Transform.Apply(ctx, f)
	if err == nil {
		l.log.UpdateLog(CategoryDataProcessing, l.subcomponent, l.message)
	}
	return out, err
}

// Preprocess builds the data preparation pipeline for o: drop, trim, cast, impute,
// feature engineering, label and one-hot encoding, removal of the remaining
// non-numeric features, then scaling. The target column is never encoded or scaled.
func Preprocess(o options.Train, log features.Logger) (*ds.Pipeline, error) {
	if log == nil {
		log = nopLogger{}
	}
	p := ds.NewPipeline()
	step := func(t ds.Transform, sub, msg string) {
		p.Add(&logged{Transform: t, log: log, subcomponent: sub, message: msg})
	}
	target := o.TargetColumn

	if len(o.DropColumns) > 0 {
		step(&columns.Drop{Columns: o.DropColumns}, "drop_columns", "Columns dropped: "+strings.Join(o.DropColumns, ", "))
	}
	step(&standardize.Trim{}, "standardize", "Whitespace trimmed in text columns")
	for _, col := range sortedKeys(o.DtypeDict) {
		dtype := o.DtypeDict[col]
		step(&cast.Cast{Column: col, Type: dtype, DayFirst: o.DayFirst}, "dtype_conversion", fmt.Sprintf("%s converted to %s", col, dtype))
	}
	for _, col := range sortedKeys(o.MissingValuesImputation) {
		imp := o.MissingValuesImputation[col]
		t, err := impute.FromStrategy(col, imp.Method, imp.Value)
		if err != nil {
			return nil, err
		}
		step(t, "missing_values", fmt.Sprintf("Missing values in %s filled with %s", col, imp.Method))
	}
	for _, name := range o.FeatureEnggName {
		if !features.Has(name) {
			return nil, fmt.Errorf("%w: %q", features.ErrUnknownOperation, name)
		}
		// feature operations report their own events
		p.Add(&features.Step{Operation: name, Logger: log, Options: o.FeatureOptions()})
	}
	if o.DoLabelEncode {
		for _, col := range without(o.LabelEncodeColumns, target) {
			step(&encode.Label{Column: col}, "label_encoding", col+" label encoded")
		}
	}
	if o.DoOneHotEncode {
		for _, col := range without(o.OneHotEncodeColumns, target) {
			step(&encode.OneHot{Column: col}, "one_hot_encoding", col+" one hot encoded")
		}
	}
	step(&columns.KeepNumeric{Keep: []string{target}}, "feature_selection", "Non-numeric feature columns dropped")
	if o.ScaleData {
		step(&scale.Standard{Exclude: []string{target}}, "scaling", "Numeric features standardised")
	}
	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func without(names []string, drop string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}

type nopLogger struct{}

func (nopLogger) UpdateLog(string, string, string) {}
