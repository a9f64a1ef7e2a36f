package impute

import (
	"fmt"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Strategy names accepted by FromStrategy.
const (
	StrategyFillNA = "fillna"
	StrategyMean   = "mean"
	StrategyMedian = "median"
	StrategyMode   = "mode"
)

var Strategies = []string{StrategyFillNA, StrategyMean, StrategyMedian, StrategyMode}

// FromStrategy builds the imputer for one column. value is only used by fillna.
func FromStrategy(column, method string, value any) (ds.Transform, error) {
	switch strings.ToLower(method) {
	case StrategyFillNA:
		if value == nil {
			return nil, fmt.Errorf("impute %s: fillna needs a value", column)
		}
		return &Constant{Column: column, Value: value}, nil
	case StrategyMean:
		return &Mean{Column: column}, nil
	case StrategyMedian:
		return &Median{Column: column}, nil
	case StrategyMode:
		return &Mode{Column: column}, nil
	default:
		return nil, fmt.Errorf("impute %s: unknown method %q (want one of %s)", column, method, strings.Join(Strategies, ", "))
	}
}
