package train

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/knn"
	"github.com/sjwhitworth/golearn/linear_models"
	"github.com/sjwhitworth/golearn/trees"
)

// ErrModelUnavailable is returned for accepted model names that have no implementation.
var ErrModelUnavailable = errors.New("model not available")

// Classifier is the part of golearn's classifier surface training relies on.
type Classifier interface {
	Fit(base.FixedDataGrid) error
	Predict(base.FixedDataGrid) (base.FixedDataGrid, error)
}

type model struct {
	// liblinear models read class labels as floats
	numericClass bool
	build        func(nFeatures int) (Classifier, error)
}

var models = map[string]model{
	"LogisticRegression": {numericClass: true, build: func(int) (Classifier, error) {
		lr, err := linear_models.NewLogisticRegression("l2", 1.0, 1e-4)
		if err != nil {
			return nil, err
		}
		return lr, nil
	}},
	"SVC": {numericClass: true, build: func(int) (Classifier, error) {
		svc, err := linear_models.NewLinearSVC("l2", "l2", true, 1.0, 1e-4)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}},
	"KNeighborsClassifier": {build: func(int) (Classifier, error) {
		return knn.NewKnnClassifier("euclidean", "linear", 5), nil
	}},
	"DecisionTreeClassifier": {build: func(int) (Classifier, error) {
		return &discretisedTree{tree: trees.NewID3DecisionTree(0.6)}, nil
	}},
	"RandomForestClassifier": {build: func(nFeatures int) (Classifier, error) {
		k := int(math.Sqrt(float64(nFeatures)))
		if k < 1 {
			k = 1
		}
		return ensemble.NewRandomForest(100, k), nil
	}},
}

// Available lists the model names that can be trained.
func Available() []string {
	out := make([]string, 0, len(models))
	for name := range models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func lookupModel(name string) (model, error) {
	m, ok := models[name]
	if !ok {
		return model{}, fmt.Errorf("%w: %s", ErrModelUnavailable, name)
	}
	return m, nil
}

// discretisedTree runs ID3 over features discretised by a ChiMerge filter
// trained on the fit data.
type discretisedTree struct {
	tree *trees.ID3DecisionTree
	filt *filters.ChiMergeFilter
}

func (d *discretisedTree) Fit(on base.FixedDataGrid) error {
	d.filt = filters.NewChiMergeFilter(on, 0.999)
	for _, a := range base.NonClassFloatAttributes(on) {
		if err := d.filt.AddAttribute(a); err != nil {
			return err
		}
	}
	if err := d.filt.Train(); err != nil {
		return err
	}
	return d.tree.Fit(base.NewLazilyFilteredInstances(on, d.filt))
}

func (d *discretisedTree) Predict(with base.FixedDataGrid) (base.FixedDataGrid, error) {
	if d.filt == nil {
		return nil, errors.New("decision tree: predict before fit")
	}
	return d.tree.Predict(base.NewLazilyFilteredInstances(with, d.filt))
}
