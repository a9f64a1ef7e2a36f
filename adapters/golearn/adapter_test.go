package golearn

import (
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/smartystreets/goconvey/convey"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

func patients() *ds.Frame {
	f := ds.NewFrame(ds.Schema{Columns: []ds.ColumnSchema{
		{Name: "Total Days Admitted", Type: ds.KindInt, Nullable: true},
		{Name: "Billing Amount", Type: ds.KindFloat, Nullable: true},
		{Name: "Insured", Type: ds.KindBool, Nullable: true},
		{Name: "Test Results", Type: ds.KindString, Nullable: true},
	}})
	_ = f.AppendRecord(map[string]any{"Total Days Admitted": 4, "Billing Amount": 100.5, "Insured": true, "Test Results": "Normal"})
	_ = f.AppendRecord(map[string]any{"Total Days Admitted": 9, "Billing Amount": 900.0, "Insured": false, "Test Results": "Abnormal"})
	_ = f.AppendRecord(map[string]any{"Total Days Admitted": 2, "Billing Amount": 50.0, "Insured": true, "Test Results": "Normal"})
	return f
}

func TestToDenseInstances(t *testing.T) {
	convey.Convey("Given a numeric frame with a text target", t, func() {
		f := patients()

		convey.Convey("Converting keeps every row and moves the class last", func() {
			inst, err := ToDenseInstances(f, "Test Results", false)
			convey.So(err, convey.ShouldBeNil)
			cols, rows := inst.Size()
			convey.So(cols, convey.ShouldEqual, 4)
			convey.So(rows, convey.ShouldEqual, 3)
			classAttrs := inst.AllClassAttributes()
			convey.So(len(classAttrs), convey.ShouldEqual, 1)
			convey.So(classAttrs[0].GetName(), convey.ShouldEqual, "Test Results")

			convey.Convey("and converting back restores values", func() {
				back, err := FromGrid(inst)
				convey.So(err, convey.ShouldBeNil)
				convey.So(back.Names(), convey.ShouldResemble, []string{"Total Days Admitted", "Billing Amount", "Insured", "Test Results"})
				v, ok := back.Value(1, "Billing Amount")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, 900.0)
				v, _ = back.Value(0, "Insured")
				convey.So(v, convey.ShouldEqual, 1.0)
				v, _ = back.Value(1, "Test Results")
				convey.So(v, convey.ShouldEqual, "Abnormal")
			})
		})

		convey.Convey("A numeric class needs a numeric column", func() {
			_, err := ToDenseInstances(f, "Test Results", true)
			convey.So(err, convey.ShouldNotBeNil)

			f.DropColumn("Test Results")
			inst, err := ToDenseInstances(f, "Total Days Admitted", true)
			convey.So(err, convey.ShouldBeNil)
			_, isFloat := inst.AllClassAttributes()[0].(*base.FloatAttribute)
			convey.So(isFloat, convey.ShouldBeTrue)
		})

		convey.Convey("A missing class column is rejected", func() {
			_, err := ToDenseInstances(f, "Outcome", false)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Text features are rejected", func() {
			col := ds.NewStringColumn("Gender", f.Rows())
			convey.So(f.SetColumn(col), convey.ShouldBeNil)
			_, err := ToDenseInstances(f, "Test Results", false)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Missing feature values are rejected", func() {
			_ = f.SetCell(0, "Billing Amount", nil)
			_, err := ToDenseInstances(f, "Test Results", false)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
