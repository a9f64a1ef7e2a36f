package options

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/transform/cast"
)

var validate = validator.New()

// Validate checks choice lists, ranges, dtype names and feature engineering names.
func Validate(t Train) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	for _, name := range t.FeatureEnggName {
		if !features.Has(name) {
			return fmt.Errorf("options: feature_engg_name: %w: %q", features.ErrUnknownOperation, name)
		}
	}
	for col, dtype := range t.DtypeDict {
		if _, err := cast.KindFor(dtype); err != nil {
			return fmt.Errorf("options: dtype_dict[%s]: %w", col, err)
		}
	}
	for col, imp := range t.MissingValuesImputation {
		if imp.Method == "fillna" && imp.Value == nil {
			return fmt.Errorf("options: missing_values_imputation[%s]: fillna needs a value", col)
		}
	}
	if n, ok, err := t.SFSFeatureCount(); err != nil {
		return fmt.Errorf("options: sfs_n_features: %w", err)
	} else if ok && n <= 0 {
		return fmt.Errorf("options: sfs_n_features must be positive, got %d", n)
	}
	return nil
}
