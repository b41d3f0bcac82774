package cmd

import (
	"context"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/query"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

type fakeSearcher struct {
	err error
}

func (s *fakeSearcher) SearchMovies(_ context.Context, phrase string) ([]*zalukaj.Movie, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*zalukaj.Movie{{URL: "https://zalukaj.com/film/heat.html", Title: phrase}}, nil
}

func TestOutput(t *testing.T) {
	Convey("Commands printing plain results write to stdout", t, func() {
		for _, name := range []string{
			"series", "seasons", "episodes", "categories", "movies", "search",
			"play", "history", "env", "where", "version",
		} {
			found, _, err := rootCmd.Find([]string{name})
			So(err, ShouldBeNil)
			So(found.Name(), ShouldEqual, name)
			So(found.OutOrStderr(), ShouldEqual, os.Stdout)
		}
	})
}

func TestSearchAndRemember(t *testing.T) {
	Convey("Given an empty query history", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.SearchShowQuerySuggestions, true)
		So(query.Clear(), ShouldBeNil)
		ctx := context.Background()

		Convey("A successful search is remembered", func() {
			movies, err := searchAndRemember(ctx, &fakeSearcher{}, "heat")
			So(err, ShouldBeNil)
			So(movies, ShouldHaveLength, 1)
			So(query.SuggestMany("he"), ShouldResemble, []string{"heat"})
		})

		Convey("A failed search is not", func() {
			_, err := searchAndRemember(ctx, &fakeSearcher{err: &zalukaj.Error{Message: "request failed"}}, "heat")
			So(err, ShouldNotBeNil)
			So(query.SuggestMany(""), ShouldBeEmpty)
		})
	})
}
