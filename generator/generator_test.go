package generator_test

import (
	"testing"

	"github.com/cdss-cmips/adhoc-pivot-exporter/generator"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a generator", t, func() {
		g := generator.New()

		Convey("NewPSK returns 16 random bytes", func() {
			psk1, err := g.NewPSK()
			So(err, ShouldBeNil)
			So(psk1, ShouldHaveLength, 16)

			psk2, err := g.NewPSK()
			So(err, ShouldBeNil)
			So(psk2, ShouldNotResemble, psk1)
		})

		Convey("UniqueID returns distinct UUIDs", func() {
			id1, err := g.UniqueID()
			So(err, ShouldBeNil)
			So(id1, ShouldHaveLength, 36)

			id2, err := g.UniqueID()
			So(err, ShouldBeNil)
			So(id2, ShouldNotEqual, id1)
		})
	})
}
