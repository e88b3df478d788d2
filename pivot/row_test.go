package pivot_test

import (
	"encoding/json"
	"testing"

	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFieldCandidates(t *testing.T) {
	Convey("Candidates are the exact, lower-case and camel-case forms without duplicates", t, func() {
		So(pivot.FieldCandidates("TotalHours"), ShouldResemble, []string{"TotalHours", "totalhours", "totalHours"})
		So(pivot.FieldCandidates("totalHours"), ShouldResemble, []string{"totalHours", "totalhours"})
		So(pivot.FieldCandidates("status"), ShouldResemble, []string{"status"})
		So(pivot.FieldCandidates(""), ShouldResemble, []string{""})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a row with inconsistently cased fields", t, func() {
		row := pivot.Row{
			"totalhours":      8,
			"recipientCounty": "Orange",
			"status":          nil,
		}

		Convey("An exact match is found", func() {
			v, ok := pivot.Lookup(row, "recipientCounty")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Orange")
		})

		Convey("A lower-case variant is found", func() {
			v, ok := pivot.Lookup(row, "totalHours")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 8)
		})

		Convey("A camel-case variant is found", func() {
			v, ok := pivot.Lookup(row, "RecipientCounty")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Orange")
		})

		Convey("Any other case variant is found", func() {
			v, ok := pivot.Lookup(row, "RECIPIENTCOUNTY")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Orange")
		})

		Convey("A nil value counts as absent", func() {
			_, ok := pivot.Lookup(row, "status")
			So(ok, ShouldBeFalse)
		})

		Convey("FirstPresent walks the fields left to right", func() {
			v, ok := pivot.FirstPresent(row, "hours", "totalHours", "recipientCounty")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 8)

			_, ok = pivot.FirstPresent(row, "hours", "amount")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a row whose keys start upper-case", t, func() {
		row := pivot.Row{"RecipientCounty": "Orange", "STATUS": nil, "Status": "Active"}

		Convey("A camel-case field still resolves", func() {
			v, ok := pivot.Lookup(row, "recipientCounty")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Orange")
		})

		Convey("Nil values are skipped when folding case", func() {
			v, ok := pivot.Lookup(row, "status")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Active")
		})
	})
}

func TestDimensionValue(t *testing.T) {
	Convey("Dimension values are rendered as strings with Unknown for missing values", t, func() {
		row := pivot.Row{
			"county":   "Orange",
			"district": 42.0,
			"code":     json.Number("0007"),
			"flag":     true,
			"empty":    "",
			"nothing":  nil,
		}
		So(pivot.DimensionValue(row, "county"), ShouldEqual, "Orange")
		So(pivot.DimensionValue(row, "district"), ShouldEqual, "42")
		So(pivot.DimensionValue(row, "code"), ShouldEqual, "0007")
		So(pivot.DimensionValue(row, "flag"), ShouldEqual, "true")
		So(pivot.DimensionValue(row, "empty"), ShouldEqual, pivot.UnknownValue)
		So(pivot.DimensionValue(row, "nothing"), ShouldEqual, pivot.UnknownValue)
		So(pivot.DimensionValue(row, "absent"), ShouldEqual, pivot.UnknownValue)
	})
}

func TestParseNumber(t *testing.T) {
	Convey("Numbers are parsed with missing and unparseable values as zero", t, func() {
		So(pivot.ParseNumber(nil), ShouldEqual, 0.0)
		So(pivot.ParseNumber(3), ShouldEqual, 3.0)
		So(pivot.ParseNumber(int64(4)), ShouldEqual, 4.0)
		So(pivot.ParseNumber(2.5), ShouldEqual, 2.5)
		So(pivot.ParseNumber("5"), ShouldEqual, 5.0)
		So(pivot.ParseNumber(" 7.25 "), ShouldEqual, 7.25)
		So(pivot.ParseNumber("12.5 hours"), ShouldEqual, 12.5)
		So(pivot.ParseNumber("-3e2"), ShouldEqual, -300.0)
		So(pivot.ParseNumber(".5"), ShouldEqual, 0.5)
		So(pivot.ParseNumber(json.Number("11")), ShouldEqual, 11.0)
		So(pivot.ParseNumber("abc"), ShouldEqual, 0.0)
		So(pivot.ParseNumber("NaN"), ShouldEqual, 0.0)
		So(pivot.ParseNumber(""), ShouldEqual, 0.0)
		So(pivot.ParseNumber(true), ShouldEqual, 0.0)
	})
}
