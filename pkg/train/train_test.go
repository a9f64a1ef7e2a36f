package train

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/options"
	"github.com/wdm0006/trainkit/pkg/runlog"
)

// admissions builds rows whose label follows the length of stay.
func admissions(n int) *ds.Frame {
	f := ds.NewFrame(ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "Name", Type: ds.KindString, Nullable: true},
		{Name: "Gender", Type: ds.KindString, Nullable: true},
		{Name: "Billing Amount", Type: ds.KindFloat, Nullable: true},
		{Name: "Date of Admission", Type: ds.KindString, Nullable: true},
		{Name: "Discharge Date", Type: ds.KindString, Nullable: true},
		{Name: "Test Results", Type: ds.KindString, Nullable: true},
	}})
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		stay := 1 + i%10
		admitted := start.AddDate(0, 0, i)
		result := "Short"
		if stay > 5 {
			result = "Long"
		}
		rec := map[string]any{
			"Name":              fmt.Sprintf("patient %d", i),
			"Gender":            []string{"Female", "Male"}[i%2],
			"Billing Amount":    float64(stay*1000 + i%7),
			"Date of Admission": admitted.Format(time.DateOnly),
			"Discharge Date":    admitted.AddDate(0, 0, stay).Format(time.DateOnly),
			"Test Results":      result,
		}
		if i%9 == 4 {
			delete(rec, "Billing Amount")
		}
		_ = f.AppendRecord(rec)
	}
	return f
}

func baseOptions(model string) options.Train {
	o := options.Default()
	o.ModelName = model
	o.TargetColumn = "Test Results"
	o.DropColumns = []string{"Name"}
	o.LabelEncodeColumns = []string{"Test Results"}
	o.OneHotEncodeColumns = []string{"Gender"}
	o.MissingValuesImputation = map[string]options.Imputation{"Billing Amount": {Method: "mean"}}
	o.FeatureEnggName = []string{"calculate_total_days"}
	o.TopN = 2
	return o
}

func TestRun(t *testing.T) {
	convey.Convey("Given admissions with a stay-driven label", t, func() {
		ctx := context.Background()
		log := runlog.New(nil)

		convey.Convey("A random forest trains and evaluates", func() {
			res, err := Run(ctx, admissions(60), baseOptions("RandomForestClassifier"), log)
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.TrainRows, convey.ShouldEqual, 42)
			convey.So(res.TestRows, convey.ShouldEqual, 18)
			convey.So(res.Features, convey.ShouldContain, features.TotalDaysColumn)
			convey.So(res.Features, convey.ShouldContain, "Gender_Male")
			convey.So(res.Features, convey.ShouldNotContain, "Date of Admission")
			convey.So(res.Accuracy, convey.ShouldBeBetweenOrEqual, 0.0, 1.0)
			convey.So(res.Accuracy, convey.ShouldBeGreaterThan, 0.6)
			convey.So(len(res.Confusion), convey.ShouldBeGreaterThan, 0)
			convey.So(len(res.Importance), convey.ShouldEqual, len(res.Features))

			convey.Convey("and every stage is in the run log", func() {
				convey.So(log.Messages(features.LogCategory, features.LogSubcomponent), convey.ShouldResemble, []string{features.TotalDaysColumn + " created"})
				convey.So(log.Messages(CategoryDataProcessing, "one_hot_encoding"), convey.ShouldResemble, []string{"Gender one hot encoded"})
				convey.So(log.Messages(CategoryDataProcessing, "label_encoding"), convey.ShouldBeEmpty)
				convey.So(log.Messages(CategoryTraining, "RandomForestClassifier"), convey.ShouldContain, "Model trained")
				convey.So(len(log.Messages(CategoryEvaluation, "accuracy")), convey.ShouldEqual, 1)
				convey.So(len(log.Messages(CategoryEvaluation, "feature_importance")), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("A nearest neighbours model trains", func() {
			res, err := Run(ctx, admissions(40), baseOptions("KNeighborsClassifier"), log)
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Accuracy, convey.ShouldBeBetweenOrEqual, 0.0, 1.0)
		})

		convey.Convey("Logistic regression trains on an encoded target", func() {
			res, err := Run(ctx, admissions(40), baseOptions("LogisticRegression"), log)
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Classes, convey.ShouldResemble, []string{"Long", "Short"})
			convey.So(res.Accuracy, convey.ShouldBeBetweenOrEqual, 0.0, 1.0)

			convey.Convey("and predictions decode to the original labels", func() {
				labels := res.Labels()
				convey.So(labels, convey.ShouldHaveLength, res.TestRows)
				for _, l := range labels {
					convey.So(l, convey.ShouldBeIn, "Long", "Short")
				}
				convey.So(res.PredictionFrame().Rows(), convey.ShouldEqual, res.TestRows)
			})
		})

		convey.Convey("Models without an implementation are reported", func() {
			_, err := Run(ctx, admissions(20), baseOptions("XGBClassifier"), log)
			convey.So(errors.Is(err, ErrModelUnavailable), convey.ShouldBeTrue)
		})

		convey.Convey("A missing dataset is an invalid state", func() {
			_, err := Run(ctx, nil, baseOptions("RandomForestClassifier"), log)
			convey.So(errors.Is(err, features.ErrInvalidState), convey.ShouldBeTrue)
		})

		convey.Convey("A missing target is rejected", func() {
			o := baseOptions("RandomForestClassifier")
			o.TargetColumn = "Medical Condition"
			_, err := Run(ctx, admissions(20), o, log)
			convey.So(errors.Is(err, ErrTargetMissing), convey.ShouldBeTrue)
		})

		convey.Convey("Unknown feature operations fail before any work", func() {
			o := baseOptions("RandomForestClassifier")
			o.FeatureEnggName = []string{"bmi"}
			_, err := Run(ctx, admissions(20), o, log)
			convey.So(errors.Is(err, features.ErrUnknownOperation), convey.ShouldBeTrue)
		})
	})
}

func TestPreprocess(t *testing.T) {
	convey.Convey("Given the options of a run", t, func() {
		o := baseOptions("RandomForestClassifier")
		o.DtypeDict = map[string]string{"Date of Admission": "datetime64"}

		convey.Convey("The pipeline runs the stages in order", func() {
			p, err := Preprocess(o, nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Steps(), convey.ShouldResemble, []string{
				"drop_columns",
				"trim_whitespace",
				"cast",
				"impute_mean",
				"feature_engineering:calculate_total_days",
				"one_hot_encode",
				"keep_numeric",
				"standard_scale",
			})
		})

		convey.Convey("The prepared frame is numeric apart from the target", func() {
			p, err := Preprocess(o, nil)
			convey.So(err, convey.ShouldBeNil)
			f, err := p.Run(context.Background(), admissions(12))
			convey.So(err, convey.ShouldBeNil)
			for _, cs := range f.Schema().Columns {
				if cs.Name == o.TargetColumn {
					convey.So(cs.Type, convey.ShouldEqual, ds.KindString)
					continue
				}
				convey.So(cs.Type, convey.ShouldEqual, ds.KindFloat)
			}
			amount, _ := f.ColumnByName("Billing Amount")
			convey.So(amount.(*ds.FloatColumn).NullCount(), convey.ShouldEqual, 0)
		})

		convey.Convey("An invalid imputation method is rejected", func() {
			o.MissingValuesImputation = map[string]options.Imputation{"Billing Amount": {Method: "interpolate"}}
			_, err := Preprocess(o, nil)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestSplitRows(t *testing.T) {
	train, test, err := splitRows(10, 0.3, 101)
	if err != nil {
		t.Fatal(err)
	}
	if len(train) != 7 || len(test) != 3 {
		t.Fatalf("expected 7/3, got %d/%d", len(train), len(test))
	}
	seen := map[int]bool{}
	for _, r := range append(append([]int(nil), train...), test...) {
		if seen[r] {
			t.Fatalf("row %d used twice", r)
		}
		seen[r] = true
	}
	again, _, _ := splitRows(10, 0.3, 101)
	for i := range train {
		if train[i] != again[i] {
			t.Fatal("same seed should give the same split")
		}
	}
	if _, _, err := splitRows(1, 0.3, 1); err == nil {
		t.Fatal("expected an error for a single row")
	}
}
