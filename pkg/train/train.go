// Package train prepares a dataset from training options, fits the chosen
// golearn model on a seeded split and evaluates it on the held-out rows.
package train

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"

	adapter "github.com/wdm0006/trainkit/adapters/golearn"
	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/options"
	"github.com/wdm0006/trainkit/pkg/transform/encode"
)

// ErrTargetMissing is returned when the target column is absent after preprocessing.
var ErrTargetMissing = errors.New("target column not found")

// Result summarises a training run.
type Result struct {
	Model     string
	Features  []string
	TrainRows int
	TestRows  int
	// Classes maps encoded class labels back to the original values when the
	// target had to be encoded for the model.
	Classes    []string
	Confusion  evaluation.ConfusionMatrix
	Accuracy   float64
	MacroF1    float64
	Summary    string
	Importance []Importance
	// Predictions holds the predicted class of every test row.
	Predictions base.FixedDataGrid
}

// Run preprocesses f according to o, then trains and evaluates o.ModelName.
// f is modified in place by preprocessing.
func Run(ctx context.Context, f *ds.Frame, o options.Train, log features.Logger) (*Result, error) {
	if f == nil {
		return nil, features.ErrInvalidState
	}
	if log == nil {
		log = nopLogger{}
	}
	if err := options.Validate(o); err != nil {
		return nil, err
	}
	m, err := lookupModel(o.ModelName)
	if err != nil {
		log.UpdateLog(CategoryTraining, o.ModelName, "Model not available")
		return nil, err
	}
	if !f.HasColumn(o.TargetColumn) {
		return nil, fmt.Errorf("%w: %s", ErrTargetMissing, o.TargetColumn)
	}

	p, err := Preprocess(o, log)
	if err != nil {
		return nil, err
	}
	f, err = p.Run(ctx, f)
	if err != nil {
		return nil, err
	}
	if !f.HasColumn(o.TargetColumn) {
		return nil, fmt.Errorf("%w after preprocessing: %s", ErrTargetMissing, o.TargetColumn)
	}
	f = dropMissingTarget(f, o.TargetColumn, log)

	res := &Result{Model: o.ModelName}
	if m.numericClass {
		if res.Classes, err = encodeTarget(ctx, f, o.TargetColumn, log); err != nil {
			return nil, err
		}
	}
	for _, name := range f.Names() {
		if name != o.TargetColumn {
			res.Features = append(res.Features, name)
		}
	}
	if len(res.Features) == 0 {
		return nil, errors.New("no feature columns left after preprocessing")
	}

	inst, err := adapter.ToDenseInstances(f, o.TargetColumn, m.numericClass)
	if err != nil {
		return nil, err
	}
	trainRows, testRows, err := splitRows(f.Rows(), o.TestSize, o.RandomState)
	if err != nil {
		return nil, err
	}
	res.TrainRows, res.TestRows = len(trainRows), len(testRows)
	trainSet, testSet := view(inst, trainRows), view(inst, testRows)

	clf, err := m.build(len(res.Features))
	if err != nil {
		return nil, err
	}
	log.UpdateLog(CategoryTraining, o.ModelName, fmt.Sprintf("Training on %d rows with %d features", res.TrainRows, len(res.Features)))
	if err := clf.Fit(trainSet); err != nil {
		return nil, fmt.Errorf("fit %s: %w", o.ModelName, err)
	}
	log.UpdateLog(CategoryTraining, o.ModelName, "Model trained")
	if o.SequentialFeatureSelector {
		log.UpdateLog(CategoryTraining, "sequential_feature_selector", "Sequential feature selection is not supported; all features kept")
	}

	preds, err := clf.Predict(testSet)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", o.ModelName, err)
	}
	res.Predictions = preds
	res.Confusion, err = evaluation.GetConfusionMatrix(testSet, preds)
	if err != nil {
		return nil, err
	}
	res.Accuracy = evaluation.GetAccuracy(res.Confusion)
	res.MacroF1 = macroF1(res.Confusion)
	res.Summary = evaluation.GetSummary(res.Confusion)
	log.UpdateLog(CategoryEvaluation, "accuracy", fmt.Sprintf("Accuracy: %.4f", res.Accuracy))
	log.UpdateLog(CategoryEvaluation, "f1", fmt.Sprintf("Macro F1: %.4f", res.MacroF1))
	log.UpdateLog(CategoryEvaluation, "confusion_matrix", res.Summary)

	if o.FeatureImportance {
		imp, err := permutationImportance(ctx, clf, f, o.TargetColumn, m.numericClass, testRows, res.Accuracy, o.RandomState)
		if err != nil {
			return nil, err
		}
		res.Importance = imp
		top := imp
		if o.TopN < len(top) {
			top = top[:o.TopN]
		}
		parts := make([]string, len(top))
		for i, fi := range top {
			parts[i] = fmt.Sprintf("%s=%.4f", fi.Feature, fi.Score)
		}
		log.UpdateLog(CategoryEvaluation, "feature_importance", "Top features: "+strings.Join(parts, ", "))
	}
	return res, nil
}

func dropMissingTarget(f *ds.Frame, target string, log features.Logger) *ds.Frame {
	col, _ := f.ColumnByName(target)
	keep := make([]int, 0, f.Rows())
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			keep = append(keep, i)
		}
	}
	if len(keep) == f.Rows() {
		return f
	}
	log.UpdateLog(CategoryDataProcessing, "missing_values", fmt.Sprintf("Dropped %d rows with missing %s", f.Rows()-len(keep), target))
	return f.Take(keep)
}

// encodeTarget label encodes a non-numeric target in place and returns its classes.
func encodeTarget(ctx context.Context, f *ds.Frame, target string, log features.Logger) ([]string, error) {
	col, _ := f.ColumnByName(target)
	if col.Kind().Numeric() {
		return nil, nil
	}
	enc := &encode.Label{Column: target}
	if _, err := enc.Apply(ctx, f); err != nil {
		return nil, err
	}
	parts := make([]string, len(enc.Classes))
	for i, c := range enc.Classes {
		parts[i] = fmt.Sprintf("%d=%s", i, c)
	}
	log.UpdateLog(CategoryDataProcessing, "label_encoding", "Target classes: "+strings.Join(parts, ", "))
	return enc.Classes, nil
}

func macroF1(cm evaluation.ConfusionMatrix) float64 {
	if len(cm) == 0 {
		return 0
	}
	sum := 0.0
	for class := range cm {
		sum += evaluation.GetF1Score(class, cm)
	}
	return sum / float64(len(cm))
}
