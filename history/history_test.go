package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalukaj-cli/zalukaj/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)

		episode := &Record{
			SeriesTitle: "Dark",
			Title:       "Geheimnisse",
			URL:         "https://zalukaj.com/serial/dark-s01e01.html",
			Season:      1,
			Episode:     1,
		}

		Convey("When saving an episode", func() {
			So(Save(episode, 40), ShouldBeNil)

			Convey("It is stored under its url", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldContainKey, episode.URL)
				So(saved[episode.URL].WatchedPercentage, ShouldEqual, 40.0)
				So(saved[episode.URL].WatchedAt.IsZero(), ShouldBeFalse)
			})

			Convey("A shorter re-watch keeps the furthest progress", func() {
				So(Save(episode, 10), ShouldBeNil)
				saved, _ := Get()
				So(saved[episode.URL].WatchedPercentage, ShouldEqual, 40.0)
			})

			Convey("A longer re-watch raises it", func() {
				So(Save(episode, 95), ShouldBeNil)
				saved, _ := Get()
				So(saved[episode.URL].WatchedPercentage, ShouldEqual, 95.0)
			})

			Convey("Recent lists the newest first", func() {
				movie := &Record{Title: "Gorączka", URL: "https://zalukaj.com/film/heat.html"}
				So(Save(movie, 100), ShouldBeNil)

				records, err := Recent()
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].Title, ShouldEqual, "Gorączka")
				So(records[0].String(), ShouldEqual, "Gorączka (100%)")
				So(records[1].String(), ShouldEqual, "Dark S01E01 Geheimnisse (40%)")
			})

			Convey("Remove forgets it", func() {
				So(Remove(episode.URL), ShouldBeNil)
				saved, _ := Get()
				So(saved, ShouldBeEmpty)
			})
		})

		Convey("A record without url is rejected", func() {
			So(Save(&Record{Title: "x"}, 1), ShouldNotBeNil)
		})
	})
}
