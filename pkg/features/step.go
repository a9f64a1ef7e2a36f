package features

import (
	"context"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Step runs a registered operation as a pipeline transform.
type Step struct {
	Operation string
	Logger    Logger
	Options   Options
}

func (s *Step) Name() string { return "feature_engineering:" + normalize(s.Operation) }

func (s *Step) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	fn, err := Lookup(s.Operation, f, s.Logger, s.Options)
	if err != nil {
		return nil, err
	}
	return fn()
}
