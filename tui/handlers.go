package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/player"
	"github.com/zalukaj-cli/zalukaj/router"
)

type resultMsg struct {
	id      int
	request request
	result  *router.Result
}

type loadFailedMsg struct {
	id  int
	err error
}

type watchedMsg struct {
	record     *history.Record
	percentage float64
	err        error
}

// load dispatches req in the background. Results of an older load are dropped.
func (b *statefulBubble) load(req request) tea.Cmd {
	if b.cancelLoad != nil {
		b.cancelLoad()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelLoad = cancel
	b.loadID++
	id := b.loadID

	b.progressStatus = req.title
	b.suspend(loadingState)

	dispatch := func() tea.Msg {
		log.Infof("opening %s", req.path)
		result, err := b.router.Dispatch(ctx, req.path)
		if err != nil {
			return loadFailedMsg{id: id, err: err}
		}
		return resultMsg{id: id, request: req, result: result}
	}

	return tea.Batch(b.spinnerC.Tick, dispatch)
}

// abortLoad cancels the running load and returns to the screen it started from.
func (b *statefulBubble) abortLoad() {
	if b.cancelLoad != nil {
		b.cancelLoad()
		b.cancelLoad = nil
	}
	b.loadID++
	b.answer(-1)
	b.setState(b.resume)
}

func (b *statefulBubble) handleResult(msg resultMsg) tea.Cmd {
	b.cancelLoad = nil

	switch {
	case msg.result == nil:
		b.setState(b.resume)
		return nil
	case msg.result.Resolved != nil:
		if !msg.result.Resolved.OK() {
			// the route has already told the user why
			b.setState(b.resume)
			return nil
		}
		return b.play(msg.result.Resolved, msg.request.record)
	case msg.result.Directory != nil:
		return b.show(msg.request, msg.result.Directory)
	}

	b.setState(b.resume)
	return nil
}

// show opens a directory, keeping the current one to come back to.
func (b *statefulBubble) show(req request, dir *router.Directory) tea.Cmd {
	if b.current.path != "" && b.current.path != req.path {
		b.current.items = b.browseC.Items()
		b.current.index = b.browseC.Index()
		b.locations.Push(b.current)
	}

	if strings.HasPrefix(req.path, router.RouteSeasons+"/") {
		b.series = req.title
	}

	items := lo.Map(dir.Items, func(item *router.Item, _ int) list.Item {
		return &listItem{internal: item, watched: b.watched[item.Path]}
	})

	b.current = location{path: req.path, title: req.title}
	b.browseC.Title = req.title
	b.browseC.ResetFilter()
	cmd := b.browseC.SetItems(items)
	b.browseC.Select(0)

	b.statesHistory.Clear()
	b.setState(browseState)
	return cmd
}

// back returns to the previous directory. It reports false at the top.
func (b *statefulBubble) back() bool {
	if b.locations.Len() == 0 {
		return false
	}

	b.current = b.locations.Pop()
	b.browseC.Title = b.current.title
	b.browseC.ResetFilter()
	b.browseC.SetItems(b.current.items)
	b.browseC.Select(b.current.index)
	return true
}

// open acts on the selected directory entry.
func (b *statefulBubble) open(item *router.Item) tea.Cmd {
	switch {
	case item.Path == router.RouteSearch:
		b.inputC.SetValue("")
		b.inputC.Focus()
		b.newState(searchState)
		return nil
	case item.Playable:
		record := &history.Record{
			Title:   item.Label,
			URL:     item.Path,
			Season:  item.Info.Season,
			Episode: item.Info.Episode,
		}
		if strings.HasPrefix(item.Path, router.RoutePlayEpisode+"/") {
			record.SeriesTitle = b.series
		}
		return b.load(request{path: item.Path, title: item.Label, record: record})
	case item.Folder:
		return b.load(request{path: item.Path, title: item.Label})
	}
	return nil
}

func (b *statefulBubble) play(resolved *router.Resolved, record *history.Record) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancelPlay = cancel
	b.playing = record
	b.progressStatus = resolved.Title
	b.setState(playState)

	save := viper.GetBool(key.HistorySaveOnPlay) && record != nil
	name := b.options.Player
	if name == "" {
		name = viper.GetString(key.Player)
	}

	watch := func() tea.Msg {
		p, err := b.newPlayer(name)
		if err != nil {
			return watchedMsg{record: record, err: err}
		}

		if save {
			if err := history.Save(record, 0); err != nil {
				log.Warn(err)
			}
		}

		percentage, err := player.Watch(ctx, p, resolved.URL, resolved.Title, resolved.Headers)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return watchedMsg{record: record, percentage: percentage, err: err}
	}

	return tea.Batch(b.spinnerC.Tick, watch)
}

func (b *statefulBubble) handleWatched(msg watchedMsg) tea.Cmd {
	b.cancelPlay = nil
	b.playing = nil

	if msg.err != nil {
		b.raiseError(msg.err)
		return nil
	}

	b.setState(b.resume)
	if msg.record == nil || !viper.GetBool(key.HistorySaveOnPlay) {
		return nil
	}

	if err := history.Save(msg.record, msg.percentage); err != nil {
		log.Warn(err)
	}
	return b.loadHistory()
}

// loadHistory refreshes the history list and the progress shown next to items.
func (b *statefulBubble) loadHistory() tea.Cmd {
	records, err := history.Recent()
	if err != nil {
		log.Warn(err)
		return nil
	}

	b.watched = make(map[string]float64, len(records))
	for _, r := range records {
		b.watched[r.URL] = r.WatchedPercentage
	}

	for _, item := range b.browseC.Items() {
		if i, ok := item.(*listItem); ok {
			if routeItem, ok := i.internal.(*router.Item); ok {
				i.watched = b.watched[routeItem.Path]
			}
		}
	}

	return b.historyC.SetItems(lo.Map(records, func(r *history.Record, _ int) list.Item {
		return &listItem{internal: r}
	}))
}

// ask shows a route prompt.
func (b *statefulBubble) ask(msg promptMsg) tea.Cmd {
	b.answer(-1)
	b.prompt = &msg
	b.selectC.Title = msg.title
	b.selectC.ResetFilter()
	cmd := b.selectC.SetItems(lo.Map(msg.options, func(option string, _ int) list.Item {
		return &listItem{internal: option}
	}))
	b.selectC.Select(0)
	b.suspend(selectState)
	return cmd
}

// answer replies to the pending prompt, if any.
func (b *statefulBubble) answer(index int) {
	if b.prompt == nil {
		return
	}
	b.prompt.answer <- index
	b.prompt = nil
}

// siteLink recovers the page address carried by a route path.
func siteLink(path string) (string, bool) {
	path, _, _ = strings.Cut(path, "?")
	if strings.HasPrefix(path, router.RouteSearch) {
		return "", false
	}

	i := strings.LastIndexByte(path, '/')
	if i < 0 || i == len(path)-1 {
		return "", false
	}

	link, err := router.Decode(path[i+1:])
	if err != nil || !strings.HasPrefix(link, "http") {
		return "", false
	}
	return link, true
}
