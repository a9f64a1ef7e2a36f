package features

import (
	"errors"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

var (
	// ErrUnknownOperation is returned by Lookup for names that are not registered.
	ErrUnknownOperation = errors.New("feature engineering method not found")
	// ErrInvalidState is returned when an operation runs without a dataset.
	ErrInvalidState = errors.New("data not loaded")
)

// Logger receives one event per operation run.
type Logger interface {
	UpdateLog(category, subcomponent, message string)
}

// Options holds the settings feature operations read.
type Options struct {
	// DayFirst reads ambiguous dates such as 03/04/2024 as 3 April.
	DayFirst bool
}

// Context binds an operation to the data it works on.
type Context struct {
	Data    *ds.Frame
	Logger  Logger
	Options Options
}

// NewContext builds a Context; a nil logger discards events.
func NewContext(data *ds.Frame, logger Logger, opt Options) *Context {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Context{Data: data, Logger: logger, Options: opt}
}

func (c *Context) log(msg string) {
	c.Logger.UpdateLog(LogCategory, LogSubcomponent, msg)
}

type nopLogger struct{}

func (nopLogger) UpdateLog(string, string, string) {}
