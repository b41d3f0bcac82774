package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/where"
)

type category struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func TestListing(t *testing.T) {
	Convey("Given a listing cache", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.CacheLifetime, 24)
		defer viper.Set(key.CacheLifetime, 24)

		listing := NewListing[[]*category]("categories")
		calls := 0
		fetch := func() ([]*category, error) {
			calls++
			return []*category{{URL: "/gatunek,2/", Title: "Akcja"}}, nil
		}

		Convey("The second lookup is served from disk", func() {
			first, err := listing.GetOrFetch("/", fetch)
			So(err, ShouldBeNil)
			second, err := listing.GetOrFetch("/", fetch)
			So(err, ShouldBeNil)

			So(calls, ShouldEqual, 1)
			So(second, ShouldResemble, first)
			So(Size(), ShouldBeGreaterThan, 0)
		})

		Convey("Different links do not collide", func() {
			_, _ = listing.GetOrFetch("/a", fetch)
			_, _ = listing.GetOrFetch("/b", fetch)
			So(calls, ShouldEqual, 2)
			So(GenerateKey("/a", "categories"), ShouldNotEqual, GenerateKey("/b", "categories"))
			So(GenerateKey("/a", "categories"), ShouldNotEqual, GenerateKey("/a", "seasons"))
		})

		Convey("Failures are not cached", func() {
			_, err := listing.GetOrFetch("/", func() ([]*category, error) {
				return nil, errors.New("offline")
			})
			So(err, ShouldNotBeNil)

			_, ok := listing.Get("/")
			So(ok, ShouldBeFalse)
		})

		Convey("A zero lifetime disables caching", func() {
			viper.Set(key.CacheLifetime, 0)
			_, _ = listing.GetOrFetch("/", fetch)
			_, _ = listing.GetOrFetch("/", fetch)
			So(calls, ShouldEqual, 2)
		})

		Convey("Prune drops stale files", func() {
			_, _ = listing.GetOrFetch("/", fetch)
			path := filepath.Join(where.Listings(), GenerateKey("/", "categories")+".json")
			old := time.Now().Add(-48 * time.Hour)
			So(filesystem.API().Chtimes(path, old, old), ShouldBeNil)

			So(Prune(), ShouldEqual, 1)
			So(Clear(), ShouldBeNil)
			So(Size(), ShouldEqual, 0)
		})
	})
}
