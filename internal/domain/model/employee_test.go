package model_test

import (
	"testing"

	"github.com/okian/headcount/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDataset(t *testing.T) {
	Convey("Given datasets", t, func() {
		Convey("When nil", func() {
			var d *model.Dataset
			So(d.Len(), ShouldEqual, 0)
		})

		Convey("When holding rows", func() {
			d := &model.Dataset{Employees: []model.Employee{{Department: "HR"}, {Department: "R&D"}}}
			So(d.Len(), ShouldEqual, 2)
		})
	})
}

func TestRequiredColumns(t *testing.T) {
	Convey("Required columns cover every Employee field", t, func() {
		So(model.RequiredColumns, ShouldResemble, []string{
			"department", "region", "performance_score", "years_experience", "satisfaction_rating",
		})
	})
}
