package network

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func newSessionServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "abc123", Path: "/"})
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("PHPSESSID")
		if err != nil {
			_, _ = w.Write([]byte("none"))
			return
		}
		_, _ = w.Write([]byte(c.Value))
	})
	mux.HandleFunc("/headers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Accept-Language") + "|" + r.Header.Get("Referer")))
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/echo", http.StatusFound)
	})
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	Convey("Given a client pointed at a test server", t, func() {
		server := newSessionServer()
		defer server.Close()

		client := NewClient(Options{BaseURL: server.URL, Timeout: time.Second})

		Convey("Default headers should be sent", func() {
			resp, err := client.R().Get(server.URL + "/headers")
			So(err, ShouldBeNil)
			So(resp.String(), ShouldEqual, "pl,en-US;q=0.9,en;q=0.8,fr;q=0.7|"+server.URL+"/")
		})

		Convey("Redirects are followed by default", func() {
			resp, err := client.R().Get(server.URL + "/redirect")
			So(err, ShouldBeNil)
			So(resp.StatusCode(), ShouldEqual, http.StatusOK)
		})

		Convey("A client without redirects returns the redirect response itself", func() {
			direct := NewClient(Options{BaseURL: server.URL, Timeout: time.Second, NoRedirects: true})

			resp, err := direct.R().Get(server.URL + "/redirect")
			So(err, ShouldBeNil)
			So(resp.StatusCode(), ShouldEqual, http.StatusFound)

			Convey("And the default client keeps following redirects meanwhile", func() {
				var wg sync.WaitGroup
				statuses := make([]int, 20)
				for i := range statuses {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						c := client
						if i%2 == 1 {
							c = direct
						}
						if resp, err := c.R().Get(server.URL + "/redirect"); err == nil {
							statuses[i] = resp.StatusCode()
						}
					}(i)
				}
				wg.Wait()

				for i, status := range statuses {
					if i%2 == 1 {
						So(status, ShouldEqual, http.StatusFound)
					} else {
						So(status, ShouldEqual, http.StatusOK)
					}
				}
			})
		})
	})
}

func TestJar(t *testing.T) {
	Convey("Given a persistent jar", t, func() {
		server := newSessionServer()
		defer server.Close()

		path := filepath.Join(where.Data(), "jar_test.cookie")
		jar, err := NewJar(server.URL, path)
		So(err, ShouldBeNil)

		client := NewClient(Options{BaseURL: server.URL, Jar: jar})

		Convey("When the server sets a session cookie", func() {
			_, err := client.R().Get(server.URL + "/set")
			So(err, ShouldBeNil)

			Convey("It should be tracked and sent back", func() {
				value, ok := jar.Get("PHPSESSID")
				So(ok, ShouldBeTrue)
				So(value, ShouldEqual, "abc123")
				So(jar.Header(), ShouldEqual, "PHPSESSID=abc123")

				resp, err := client.R().Get(server.URL + "/echo")
				So(err, ShouldBeNil)
				So(resp.String(), ShouldEqual, "abc123")
			})

			Convey("It should survive a save and load into a fresh jar", func() {
				So(jar.Save(), ShouldBeNil)

				restored, err := NewJar(server.URL, path)
				So(err, ShouldBeNil)
				So(restored.Load(), ShouldBeNil)

				value, ok := restored.Get("PHPSESSID")
				So(ok, ShouldBeTrue)
				So(value, ShouldEqual, "abc123")
				So(restored.Len(), ShouldEqual, 1)
			})

			Convey("Clear and Save should leave an empty file", func() {
				jar.Clear()
				So(jar.Len(), ShouldEqual, 0)
				So(jar.Save(), ShouldBeNil)

				restored, err := NewJar(server.URL, path)
				So(err, ShouldBeNil)
				So(restored.Load(), ShouldBeNil)

				_, ok := restored.Get("PHPSESSID")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("A deleting Set-Cookie removes the tracked copy", func() {
			u := jar.site
			jar.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1", Path: "/"}})
			So(jar.Len(), ShouldEqual, 1)
			jar.SetCookies(u, []*http.Cookie{{Name: "a", Path: "/", MaxAge: -1}})
			So(jar.Len(), ShouldEqual, 0)
		})
	})
}
