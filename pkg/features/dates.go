package features

import (
	"time"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Operation names.
const (
	CalculateTotalDays  = "calculate_total_days"
	SeparateDateColumns = "separate_date_columns"
)

// Column names read and written by the date operations.
const (
	AdmissionDateColumn = "Date of Admission"
	DischargeDateColumn = "Discharge Date"
	TotalDaysColumn     = "Total Days Admitted"
)

// Run log coordinates for feature engineering events.
const (
	LogCategory     = "data_processing"
	LogSubcomponent = "feature_engineering"
)

const day = 24 * time.Hour

// CalculateTotalDays writes the whole days between the admission and discharge
// dates into TotalDaysColumn. Rows where either date is missing get a null.
// When either source column is absent the dataset is left untouched.
func (c *Context) CalculateTotalDays() (*ds.Frame, error) {
	if c.Data == nil {
		return nil, ErrInvalidState
	}
	start, okStart := c.Data.ColumnByName(AdmissionDateColumn)
	end, okEnd := c.Data.ColumnByName(DischargeDateColumn)
	if okStart && okEnd {
		out := ds.NewIntColumn(TotalDaysColumn, c.Data.Rows())
		for i := 0; i < c.Data.Rows(); i++ {
			from, ok := ds.TimeAt(start, i, c.Options.DayFirst)
			if !ok {
				continue
			}
			to, ok := ds.TimeAt(end, i, c.Options.DayFirst)
			if !ok {
				continue
			}
			out.Set(i, floorDays(to.Sub(from)))
		}
		if err := c.Data.SetColumn(out); err != nil {
			return nil, err
		}
	}
	if c.Data.HasColumn(TotalDaysColumn) {
		c.log(TotalDaysColumn + " created")
	} else {
		c.log("Date columns missing")
	}
	return c.Data, nil
}

// SeparateDateColumns splits each present date column into "<col> Year",
// "<col> Month" and "<col> Day" integer columns.
func (c *Context) SeparateDateColumns() (*ds.Frame, error) {
	if c.Data == nil {
		return nil, ErrInvalidState
	}
	var split int
	for _, name := range []string{AdmissionDateColumn, DischargeDateColumn} {
		src, ok := c.Data.ColumnByName(name)
		if !ok {
			continue
		}
		n := c.Data.Rows()
		year, month, dom := ds.NewIntColumn(name+" Year", n), ds.NewIntColumn(name+" Month", n), ds.NewIntColumn(name+" Day", n)
		for i := 0; i < n; i++ {
			t, ok := ds.TimeAt(src, i, c.Options.DayFirst)
			if !ok {
				continue
			}
			year.Set(i, int64(t.Year()))
			month.Set(i, int64(t.Month()))
			dom.Set(i, int64(t.Day()))
		}
		for _, col := range []ds.Column{year, month, dom} {
			if err := c.Data.SetColumn(col); err != nil {
				return nil, err
			}
		}
		split++
	}
	if split > 0 {
		c.log("Date columns separated")
	} else {
		c.log("Date columns missing")
	}
	return c.Data, nil
}

// floorDays truncates d to whole days, rounding toward negative infinity.
func floorDays(d time.Duration) int64 {
	n := int64(d / day)
	if d%day < 0 {
		n--
	}
	return n
}
