package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/player"
	"github.com/zalukaj-cli/zalukaj/router"
)

func init() {
	filesystem.SetMemMapFs()
}

const (
	seriesLink  = "https://zalukaj.com/sezon-serialu/gra-o-tron/"
	episodeLink = "https://zalukaj.com/serial/gra-o-tron-s01e01/"
)

type fakeDispatcher struct {
	results map[string]*router.Result
	paths   []string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, path string) (*router.Result, error) {
	f.paths = append(f.paths, path)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, ok := f.results[path]
	if !ok {
		return nil, router.ErrNotFound
	}
	return result, nil
}

type fakePlayer struct {
	played string
	exited chan struct{}
}

func (p *fakePlayer) Play(url, _ string, _ map[string]string) error {
	p.played = url
	close(p.exited)
	return nil
}
func (p *fakePlayer) GetPercentWatched() (float64, error) { return 0, nil }
func (p *fakePlayer) IsRunning() bool                     { return false }
func (p *fakePlayer) Wait() <-chan struct{}               { return p.exited }
func (p *fakePlayer) Close() error                        { return nil }

var (
	seasonsPath = router.URLFor(router.RouteSeasons, seriesLink)
	episodePath = router.URLFor(router.RoutePlayEpisode, episodeLink)
	brokenPath  = router.URLFor(router.RoutePlayMovie, "https://zalukaj.com/zalukaj-film/1/x.html")
)

func catalog() *fakeDispatcher {
	return &fakeDispatcher{results: map[string]*router.Result{
		router.RouteIndex: {Directory: &router.Directory{Items: []*router.Item{
			{Label: "Seriale", Path: router.RouteTVSeries, Folder: true},
			{Label: "Szukaj", Path: router.RouteSearch, Folder: true},
		}}},
		router.RouteTVSeries: {Directory: &router.Directory{Items: []*router.Item{
			{Label: "Gra o tron", Path: seasonsPath, Folder: true},
		}}},
		seasonsPath: {Directory: &router.Directory{Items: []*router.Item{
			{Label: "Pilot", Path: episodePath, Playable: true, Info: router.Info{Season: 1, Episode: 1, Plot: "Zima nadchodzi."}},
			{Label: "Zepsuty", Path: brokenPath, Playable: true},
		}}},
		episodePath: {Resolved: &router.Resolved{URL: "https://cdn/720.mp4", Title: "Pilot"}},
		brokenPath:  {Resolved: &router.Resolved{}},
		router.URLFor(router.RouteSearch, "dexter"): {Directory: &router.Directory{Items: []*router.Item{}}},
	}}
}

// collect runs cmd and every command it batches, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// settle feeds the route and playback messages produced by cmd back into b.
func settle(b *statefulBubble, cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case resultMsg, loadFailedMsg, watchedMsg:
			_, next := b.Update(msg)
			settle(b, next)
		}
	}
}

func press(b *statefulBubble, k tea.KeyMsg) tea.Cmd {
	_, cmd := b.Update(k)
	return cmd
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble(d *fakeDispatcher, options *Options) (*statefulBubble, *fakePlayer) {
	b := newBubble(options, d)
	b.resize(100, 40)

	p := &fakePlayer{exited: make(chan struct{})}
	b.newPlayer = func(string) (player.Player, error) {
		return p, nil
	}
	return b, p
}

func TestBrowse(t *testing.T) {
	Convey("Given the browser over a catalog", t, func() {
		d := catalog()
		b, p := newTestBubble(d, &Options{})
		settle(b, b.Init())

		Convey("It should open the index", func() {
			So(b.state, ShouldEqual, browseState)
			So(b.browseC.Items(), ShouldHaveLength, 2)
			So(d.paths, ShouldResemble, []string{router.RouteIndex})
		})

		Convey("Enter should open a folder and esc should come back without a request", func() {
			settle(b, press(b, enter))
			So(b.current.path, ShouldEqual, router.RouteTVSeries)
			So(b.browseC.Title, ShouldEqual, "Seriale")

			settle(b, press(b, enter))
			So(b.current.path, ShouldEqual, seasonsPath)
			So(b.series, ShouldEqual, "Gra o tron")
			So(b.selectedPlot(), ShouldEqual, "Zima nadchodzi.")

			press(b, esc)
			press(b, esc)
			So(b.current.path, ShouldEqual, router.RouteIndex)
			So(b.browseC.Items(), ShouldHaveLength, 2)
			So(d.paths, ShouldHaveLength, 3)

			Convey("and stay at the top", func() {
				press(b, esc)
				So(b.state, ShouldEqual, browseState)
				So(b.current.path, ShouldEqual, router.RouteIndex)
			})
		})

		Convey("The search entry should ask for a phrase", func() {
			press(b, down)
			press(b, enter)
			So(b.state, ShouldEqual, searchState)

			b.inputC.SetValue("dexter")
			settle(b, press(b, enter))
			So(b.state, ShouldEqual, browseState)
			So(b.current.path, ShouldEqual, router.URLFor(router.RouteSearch, "dexter"))
			So(b.browseC.Title, ShouldEqual, "Szukaj: dexter")
		})

		Convey("Esc in search should return to the listing", func() {
			press(b, runes("s"))
			So(b.state, ShouldEqual, searchState)
			press(b, esc)
			So(b.state, ShouldEqual, browseState)
		})

		Convey("Given an episode list", func() {
			viper.Set(key.HistorySaveOnPlay, true)
			So(history.Clear(), ShouldBeNil)
			settle(b, press(b, enter))
			settle(b, press(b, enter))

			Convey("Playing should hand the stream to the player and record it", func() {
				settle(b, press(b, enter))
				So(p.played, ShouldEqual, "https://cdn/720.mp4")
				So(b.state, ShouldEqual, browseState)

				saved, err := history.Get()
				So(err, ShouldBeNil)
				So(saved, ShouldContainKey, episodePath)
				So(saved[episodePath].SeriesTitle, ShouldEqual, "Gra o tron")
				So(saved[episodePath].Season, ShouldEqual, 1)
			})

			Convey("A finished playback should update the progress shown", func() {
				record := &history.Record{Title: "Pilot", URL: episodePath}
				settle(b, func() tea.Msg { return watchedMsg{record: record, percentage: 90} })
				So(b.watched[episodePath], ShouldEqual, 90.0)
				So(b.browseC.Items()[0].(*listItem).watched, ShouldEqual, 90.0)
			})

			Convey("A player failure should be shown as an error", func() {
				b.newPlayer = func(string) (player.Player, error) {
					return nil, errors.New("player \"mpv\" not found")
				}
				settle(b, press(b, enter))
				So(b.state, ShouldEqual, errorState)

				press(b, esc)
				So(b.state, ShouldEqual, browseState)
			})

			Convey("Nothing to play should keep the listing", func() {
				press(b, down)
				settle(b, press(b, enter))
				So(b.state, ShouldEqual, browseState)
				So(p.played, ShouldBeEmpty)
			})

			Reset(func() {
				viper.Set(key.HistorySaveOnPlay, false)
			})
		})

		Convey("An unknown route should raise an error", func() {
			settle(b, b.load(request{path: "/nope"}))
			So(b.state, ShouldEqual, errorState)
			So(errors.Is(b.lastError, router.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestLoading(t *testing.T) {
	Convey("Given a load in progress", t, func() {
		b, _ := newTestBubble(catalog(), &Options{})
		settle(b, b.Init())

		cmd := b.load(request{path: router.RouteTVSeries, title: "Seriale"})
		So(b.state, ShouldEqual, loadingState)

		Convey("Esc should return at once and drop the late result", func() {
			press(b, esc)
			So(b.state, ShouldEqual, browseState)

			settle(b, cmd)
			So(b.current.path, ShouldEqual, router.RouteIndex)
		})

		Convey("A newer load should win over an older one", func() {
			newer := b.load(request{path: router.RouteIndex, title: "zalukaj"})
			settle(b, cmd)
			So(b.state, ShouldEqual, loadingState)
			settle(b, newer)
			So(b.state, ShouldEqual, browseState)
			So(b.current.path, ShouldEqual, router.RouteIndex)
		})

		Convey("A prompt should be answered from the selection list", func() {
			answer := make(chan int, 1)
			b.Update(promptMsg{title: router.TitleSelectQuality, options: []string{"480p", "720p"}, answer: answer})
			So(b.state, ShouldEqual, selectState)
			So(b.selectC.Title, ShouldEqual, router.TitleSelectQuality)

			press(b, down)
			press(b, enter)
			So(<-answer, ShouldEqual, 1)
			So(b.state, ShouldEqual, loadingState)

			Convey("and esc should cancel it", func() {
				answer := make(chan int, 1)
				b.Update(promptMsg{title: router.TitleSelectVersion, options: []string{"Lektor"}, answer: answer})
				press(b, esc)
				So(<-answer, ShouldEqual, -1)
				So(b.state, ShouldEqual, loadingState)
			})
		})
	})
}

func TestHistoryScreen(t *testing.T) {
	Convey("Given a saved episode", t, func() {
		So(history.Clear(), ShouldBeNil)
		So(history.Save(&history.Record{SeriesTitle: "Gra o tron", Title: "Pilot", URL: episodePath, Season: 1, Episode: 1}, 40), ShouldBeNil)

		Convey("Continue should start at the history", func() {
			d := catalog()
			b, p := newTestBubble(d, &Options{Continue: true})
			settle(b, b.Init())
			So(b.state, ShouldEqual, historyState)
			So(b.historyC.Items(), ShouldHaveLength, 1)
			So(b.historyC.Items()[0].(*listItem).Title(), ShouldEqual, "Gra o tron")

			Convey("Enter should play the entry again", func() {
				settle(b, press(b, enter))
				So(p.played, ShouldEqual, "https://cdn/720.mp4")
				So(b.state, ShouldEqual, historyState)
			})

			Convey("d should remove the entry", func() {
				press(b, runes("d"))
				So(b.historyC.Items(), ShouldBeEmpty)
			})

			Convey("Esc should fall back to the index", func() {
				settle(b, press(b, esc))
				So(b.state, ShouldEqual, browseState)
				So(b.current.path, ShouldEqual, router.RouteIndex)
			})
		})
	})
}

func TestHost(t *testing.T) {
	Convey("Given a host bridged to a channel", t, func() {
		sent := make(chan tea.Msg, 1)
		h := &host{send: func(msg tea.Msg) { sent <- msg }}

		Convey("Select should block until the prompt is answered", func() {
			done := make(chan int, 1)
			go func() {
				index, _ := h.Select(router.TitleSelectQuality, []string{"480p", "720p"})
				done <- index
			}()

			prompt := (<-sent).(promptMsg)
			So(prompt.options, ShouldResemble, []string{"480p", "720p"})
			prompt.answer <- 1
			So(<-done, ShouldEqual, 1)
		})

		Convey("A negative answer should cancel", func() {
			go func() {
				prompt := (<-sent).(promptMsg)
				prompt.answer <- -1
			}()
			_, err := h.Select(router.TitleSelectVersion, []string{"Lektor"})
			So(errors.Is(err, router.ErrCancelled), ShouldBeTrue)
		})

		Convey("No options should cancel without asking", func() {
			_, err := h.Select(router.TitleSelectVersion, nil)
			So(errors.Is(err, router.ErrCancelled), ShouldBeTrue)
		})
	})
}

func TestSiteLink(t *testing.T) {
	Convey("Route paths should lead back to site pages", t, func() {
		link, ok := siteLink(seasonsPath)
		So(ok, ShouldBeTrue)
		So(link, ShouldEqual, seriesLink)

		link, ok = siteLink(router.URLFor(router.RoutePlayEpisode, episodeLink, "Pilot"))
		So(ok, ShouldBeTrue)
		So(link, ShouldEqual, episodeLink)

		_, ok = siteLink(router.RouteTVSeries)
		So(ok, ShouldBeFalse)

		_, ok = siteLink(router.URLFor(router.RouteSearch, "dexter"))
		So(ok, ShouldBeFalse)
	})
}
