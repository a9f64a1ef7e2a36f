package train

import (
	"context"
	"math/rand"
	"sort"

	"github.com/sjwhitworth/golearn/evaluation"

	adapter "github.com/wdm0006/trainkit/adapters/golearn"
	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Importance is the accuracy lost when a feature's test values are shuffled.
type Importance struct {
	Feature string  `json:"feature" yaml:"feature"`
	Score   float64 `json:"score" yaml:"score"`
}

// permutationImportance shuffles one feature at a time across the test rows,
// re-predicts and scores the drop from baseline accuracy. The result is sorted
// by score, highest first.
func permutationImportance(ctx context.Context, clf Classifier, f *ds.Frame, target string, numericClass bool, testRows []int, baseline float64, seed int64) ([]Importance, error) {
	rng := rand.New(rand.NewSource(seed))
	var out []Importance
	for _, name := range f.Names() {
		if name == target {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shuffled := f.Clone()
		col, _ := shuffled.ColumnByName(name)
		order := make([]int, f.Rows())
		for i := range order {
			order[i] = i
		}
		for i, j := range rng.Perm(len(testRows)) {
			order[testRows[i]] = testRows[j]
		}
		col.Permute(order)

		inst, err := adapter.ToDenseInstances(shuffled, target, numericClass)
		if err != nil {
			return nil, err
		}
		testSet := view(inst, testRows)
		preds, err := clf.Predict(testSet)
		if err != nil {
			return nil, err
		}
		cm, err := evaluation.GetConfusionMatrix(testSet, preds)
		if err != nil {
			return nil, err
		}
		out = append(out, Importance{Feature: name, Score: baseline - evaluation.GetAccuracy(cm)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}
