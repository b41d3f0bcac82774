package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalukaj-cli/zalukaj/filesystem"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Should order by major, minor and patch", func() {
			for _, tc := range []struct {
				a, b string
				want int
			}{
				{"1.0.0", "0.9.9", 1},
				{"v0.1.0", "0.1.0", 0},
				{"0.1.2", "0.1.10", -1},
			} {
				got, err := Compare(tc.a, tc.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, tc.want)
			}
		})

		Convey("Should fail on malformed versions", func() {
			_, err := Compare("latest", "0.1.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func release(tag string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	}))
}

func TestFetchLatest(t *testing.T) {
	Convey("fetchLatest", t, func() {
		Convey("Should strip the v prefix", func() {
			server := release("v1.2.3")
			defer server.Close()

			ver, err := fetchLatest(server.URL)
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.2.3")
		})

		Convey("Should reject an empty tag", func() {
			server := release("")
			defer server.Close()

			_, err := fetchLatest(server.URL)
			So(err, ShouldNotBeNil)
		})

		Convey("Should fail on error statuses", func() {
			server := httptest.NewServer(http.NotFoundHandler())
			defer server.Close()

			_, err := fetchLatest(server.URL)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLatest(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		filesystem.SetMemMapFs()
		server := release("v2.0.0")
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()

		Convey("Latest should fetch and cache the release", func() {
			ver, err := Latest()
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "2.0.0")

			ReleasesURL = "http://127.0.0.1:0"
			ver, err = Latest()
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "2.0.0")
		})
	})
}
