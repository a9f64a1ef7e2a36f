// Package options defines the training options, their defaults and the
// command-line flags that set them.
package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wdm0006/trainkit/pkg/features"
)

// Models lists every accepted model_name.
var Models = []string{
	"LogisticRegression",
	"KNeighborsClassifier",
	"SVC",
	"DecisionTreeClassifier",
	"RandomForestClassifier",
	"AdaBoostClassifier",
	"GradientBoostingClassifier",
	"XGBClassifier",
	"CatBoostClassifier",
	"LGBMClassifier",
}

// Imputation is one entry of missing_values_imputation.
type Imputation struct {
	Method string `koanf:"method" validate:"required,oneof=fillna mean median mode"`
	Value  any    `koanf:"value"`
}

// Train holds every option of a training run.
type Train struct {
	ModelName   string  `koanf:"model_name" validate:"required,oneof=LogisticRegression KNeighborsClassifier SVC DecisionTreeClassifier RandomForestClassifier AdaBoostClassifier GradientBoostingClassifier XGBClassifier CatBoostClassifier LGBMClassifier"`
	RandomState int64   `koanf:"random_state"`
	TestSize    float64 `koanf:"test_size" validate:"gt=0,lt=1"`
	NTrials     int     `koanf:"n_trials" validate:"oneof=50 100 150 200"`
	ScaleData   bool    `koanf:"scale_data"`

	TargetColumn            string                `koanf:"target_column" validate:"required"`
	DropColumns             []string              `koanf:"drop_columns"`
	LabelEncodeColumns      []string              `koanf:"label_encode_columns"`
	OneHotEncodeColumns     []string              `koanf:"one_hot_encode_columns"`
	DtypeDict               map[string]string     `koanf:"dtype_dict"`
	MissingValuesImputation map[string]Imputation `koanf:"missing_values_imputation" validate:"dive"`
	FeatureEnggName         []string              `koanf:"feature_engg_name"`
	DayFirst                bool                  `koanf:"day_first"`

	// read by models that handle missing and categorical values natively
	MissingValueSetupModel int      `koanf:"missing_value_setup_model"`
	MissingValueModel      bool     `koanf:"missing_value_model"`
	CatColumns             bool     `koanf:"cat_columns"`
	DoOneHotEncode         bool     `koanf:"do_one_hot_encode"`
	DoLabelEncode          bool     `koanf:"do_label_encode"`
	CatBoostFeatures       []string `koanf:"cat_boost_features"`

	TopN              int  `koanf:"top_n" validate:"gte=0"`
	FeatureImportance bool `koanf:"feature_importance"`

	SequentialFeatureSelector bool   `koanf:"sequential_feature_selector"`
	SFSDirection              string `koanf:"sfs_direction" validate:"oneof=forward backward"`
	SFSKFeatures              string `koanf:"sfs_k_features" validate:"oneof=best parsimonious"`
	SFSVerbose                int    `koanf:"sfs_verbose"`
	SFSScoring                string `koanf:"sfs_scoring" validate:"oneof=accuracy roc_auc"`
	// "none" or a positive integer
	SFSNFeatures string `koanf:"sfs_n_features"`
	SFSCV        int    `koanf:"sfs_cv" validate:"gte=2"`
}

// Default returns the options used when nothing else is configured.
func Default() Train {
	return Train{
		ModelName:           "RandomForestClassifier",
		RandomState:         101,
		TestSize:            0.3,
		NTrials:             100,
		ScaleData:           true,
		TargetColumn:        "Status",
		DropColumns:         []string{"Age"},
		LabelEncodeColumns:  []string{"Sex", "Edema", "Status"},
		OneHotEncodeColumns: []string{"Drug", "Hepatomegaly", "Spiders", "Ascites"},
		DtypeDict:           map[string]string{},
		MissingValuesImputation: map[string]Imputation{
			"Drug":          {Method: "fillna", Value: "Unknown"},
			"Ascites":       {Method: "fillna", Value: "Unknown"},
			"Hepatomegaly":  {Method: "fillna", Value: "Unknown"},
			"Spiders":       {Method: "fillna", Value: "Unknown"},
			"Cholesterol":   {Method: "mean"},
			"Albumin":       {Method: "mean"},
			"Copper":        {Method: "mean"},
			"Alk_Phos":      {Method: "mean"},
			"SGOT":          {Method: "mean"},
			"Tryglicerides": {Method: "mean"},
			"Platelets":     {Method: "mean"},
			"Prothrombin":   {Method: "mean"},
			"Stage":         {Method: "mode"},
		},
		MissingValueSetupModel:    -1,
		CatColumns:                true,
		DoOneHotEncode:            true,
		DoLabelEncode:             true,
		TopN:                      5,
		FeatureImportance:         true,
		SequentialFeatureSelector: true,
		SFSDirection:              "forward",
		SFSKFeatures:              "best",
		SFSVerbose:                1,
		SFSScoring:                "accuracy",
		SFSNFeatures:              "none",
		SFSCV:                     5,
	}
}

// FeatureOptions returns the subset read by feature engineering.
func (t Train) FeatureOptions() features.Options {
	return features.Options{DayFirst: t.DayFirst}
}

// SFSFeatureCount parses sfs_n_features; false means "none".
func (t Train) SFSFeatureCount() (int, bool, error) {
	return noneOrInt(t.SFSNFeatures)
}

func noneOrInt(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid value: %s", s)
	}
	return n, true, nil
}

// Flags registers one flag per option, using the defaults from d.
func Flags(fs *pflag.FlagSet, d Train) {
	fs.StringP("model_name", "m", d.ModelName, "Name of the model to train ("+strings.Join(Models, ", ")+")")
	fs.Int64("random_state", d.RandomState, "Seed for random state")
	fs.Float64("test_size", d.TestSize, "Size of the test set")
	fs.Int("n_trials", d.NTrials, "Number of trials for hyperparameter tuning (50, 100, 150, 200)")
	fs.BoolP("scale_data", "s", d.ScaleData, "Whether to scale the data")
	fs.String("target_column", d.TargetColumn, "Name of the target column")
	fs.StringSlice("drop_columns", d.DropColumns, "List of columns to drop")
	fs.StringSlice("label_encode_columns", d.LabelEncodeColumns, "List of columns to label encode")
	fs.StringSlice("one_hot_encode_columns", d.OneHotEncodeColumns, "List of columns to one hot encode")
	fs.StringToString("dtype_dict", d.DtypeDict, "Column data types, eg: \"Date of Admission=datetime64\"")
	fs.StringSlice("feature_engg_name", d.FeatureEnggName, "Feature engineering methods to run ("+strings.Join(features.Names(), ", ")+")")
	fs.Bool("day_first", d.DayFirst, "Parse ambiguous dates day first")
	fs.Int("missing_value_setup_model", d.MissingValueSetupModel, "What value the models should consider as missing value")
	fs.Bool("missing_value_model", d.MissingValueModel, "The model will handle missing values")
	fs.Bool("cat_columns", d.CatColumns, "The model will handle categorical values")
	fs.Bool("do_one_hot_encode", d.DoOneHotEncode, "To perform one hot encoding on the columns")
	fs.Bool("do_label_encode", d.DoLabelEncode, "To perform label encoding on the columns")
	fs.StringSlice("cat_boost_features", d.CatBoostFeatures, "List of columns to be treated as categorical features")
	fs.Int("top_n", d.TopN, "Number of top features to log")
	fs.Bool("feature_importance", d.FeatureImportance, "Whether to calculate feature importance")
	fs.Bool("sequential_feature_selector", d.SequentialFeatureSelector, "Whether to perform sequential feature selection")
	fs.String("sfs_direction", d.SFSDirection, "Direction of sequential feature selection (forward, backward)")
	fs.String("sfs_k_features", d.SFSKFeatures, "Method to select the number of features (best, parsimonious)")
	fs.Int("sfs_verbose", d.SFSVerbose, "Verbosity of sequential feature selection")
	fs.String("sfs_scoring", d.SFSScoring, "Scoring metric for sequential feature selection (accuracy, roc_auc)")
	fs.String("sfs_n_features", d.SFSNFeatures, "Number of features to select, or none")
	fs.Int("sfs_cv", d.SFSCV, "Number of cross-validation folds")
}
