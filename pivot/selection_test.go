package pivot_test

import (
	"strings"
	"testing"

	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSelection(t *testing.T) {
	Convey("Given dimension slots with gaps", t, func() {
		sel, err := pivot.NewSelection([]string{"", "status", "", "recipientCounty"}, nil)
		So(err, ShouldBeNil)

		Convey("Only non-empty slots are active, in slot order", func() {
			So(sel.ActiveDimensions(), ShouldResemble, []string{"status", "recipientCounty"})
		})
	})

	Convey("Given more dimensions than slots", t, func() {
		_, err := pivot.NewSelection(strings.Split("a,b,c,d,e,f,g,h,i", ","), nil)

		Convey("An AggregationError is returned", func() {
			aggErr, ok := err.(*pivot.AggregationError)
			So(ok, ShouldBeTrue)
			So(aggErr.Reason, ShouldEqual, pivot.ReasonTooManyDimensions)
		})
	})
}

func TestMeasureSet(t *testing.T) {
	Convey("Given the default catalog and its default measures", t, func() {
		catalog := pivot.DefaultCatalog()
		ms := catalog.DefaultMeasures()

		Convey("Not every measure is selected by default", func() {
			So(ms.AllSelected(catalog), ShouldBeFalse)
			So(ms.Names(catalog), ShouldResemble, []string{"ID Count", "County Population", "Authorized Hours"})
		})

		Convey("Toggling (All) selects every measure", func() {
			So(ms.Toggle(catalog, pivot.MeasureAll), ShouldBeNil)
			So(ms.AllSelected(catalog), ShouldBeTrue)
			_, stored := ms[pivot.MeasureAll]
			So(stored, ShouldBeFalse)

			Convey("Toggling (All) again clears every measure", func() {
				So(ms.Toggle(catalog, pivot.MeasureAll), ShouldBeNil)
				So(ms.Names(catalog), ShouldBeEmpty)
			})

			Convey("Toggling one measure off means (All) is no longer selected", func() {
				So(ms.Toggle(catalog, "Total Amount"), ShouldBeNil)
				So(ms.Selected("Total Amount"), ShouldBeFalse)
				So(ms.AllSelected(catalog), ShouldBeFalse)
			})
		})

		Convey("Selecting the remaining measures one by one makes (All) selected", func() {
			So(ms.Toggle(catalog, "Total Hours"), ShouldBeNil)
			So(ms.Toggle(catalog, "Total Amount"), ShouldBeNil)
			So(ms.AllSelected(catalog), ShouldBeTrue)
		})

		Convey("Toggling an unknown measure fails", func() {
			err := ms.Toggle(catalog, "Active Error Rate")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "aggregation failed: unknown measure: Active Error Rate")
		})

		Convey("A clone is independent of the original", func() {
			clone := ms.Clone()
			So(clone.Toggle(catalog, "ID Count"), ShouldBeNil)
			So(ms.Selected("ID Count"), ShouldBeTrue)
			So(clone.Selected("ID Count"), ShouldBeFalse)
		})
	})

	Convey("Given a list of measure names", t, func() {
		catalog := pivot.DefaultCatalog()

		Convey("A set is built with exactly those measures", func() {
			ms, err := pivot.MeasureSetFromNames(catalog, []string{"Total Amount", "ID Count"})
			So(err, ShouldBeNil)
			So(ms.Names(catalog), ShouldResemble, []string{"ID Count", "Total Amount"})
		})

		Convey("(All) selects every measure", func() {
			ms, err := pivot.MeasureSetFromNames(catalog, []string{pivot.MeasureAll})
			So(err, ShouldBeNil)
			So(ms.AllSelected(catalog), ShouldBeTrue)
		})

		Convey("An unknown name fails", func() {
			_, err := pivot.MeasureSetFromNames(catalog, []string{"bogus"})
			So(err, ShouldNotBeNil)
		})
	})
}
