package tui

import (
	"context"
	"errors"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/open"
	"github.com/zalukaj-cli/zalukaj/query"
	"github.com/zalukaj-cli/zalukaj/router"
)

func (b *statefulBubble) Init() tea.Cmd {
	cmd := b.loadHistory()

	if b.options.Continue {
		b.newState(historyState)
		return cmd
	}

	path := b.options.Path
	if path == "" {
		path = router.RouteIndex
	}
	return tea.Batch(cmd, b.load(request{path: path, title: constant.Zalukaj}))
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		return b, uiCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case promptMsg:
		return b, b.ask(msg)
	case resultMsg:
		if msg.id != b.loadID {
			return b, nil
		}
		return b, b.handleResult(msg)
	case loadFailedMsg:
		if msg.id != b.loadID {
			return b, nil
		}
		b.cancelLoad = nil
		if errors.Is(msg.err, context.Canceled) {
			b.setState(b.resume)
			return b, nil
		}
		b.raiseError(msg.err)
		return b, nil
	case watchedMsg:
		return b, b.handleWatched(msg)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.shutdown()
			return b, tea.Quit
		}
	}

	switch b.state {
	case loadingState, playState:
		return b.updateWaiting(msg)
	case browseState:
		return b.updateBrowse(msg)
	case searchState:
		return b.updateSearch(msg)
	case historyState:
		return b.updateHistory(msg)
	case selectState:
		return b.updateSelect(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateWaiting(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			if b.state == playState {
				if b.cancelPlay != nil {
					b.cancelPlay()
				}
				return b, nil
			}
			b.abortLoad()
			return b, nil
		}
	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.browseC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.browseC.FilterState() != list.Unfiltered {
				break
			}
			b.back()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.selectedRouteItem(); ok {
				return b, b.open(item)
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.search):
			b.inputC.SetValue("")
			b.inputC.Focus()
			b.newState(searchState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.history):
			b.newState(historyState)
			return b, b.loadHistory()
		case bubblesKey.Matches(msg, b.keymap.refresh):
			if b.current.path == "" {
				return b, nil
			}
			return b, b.load(request{path: b.current.path, title: b.current.title})
		case bubblesKey.Matches(msg, b.keymap.openURL):
			item, ok := b.selectedRouteItem()
			if !ok {
				return b, nil
			}
			if link, ok := siteLink(item.Path); ok {
				if err := open.Start(link); err != nil {
					b.raiseError(err)
				}
			}
			return b, nil
		}
	}

	b.browseC, cmd = b.browseC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) selectedRouteItem() (*router.Item, bool) {
	selected, ok := b.browseC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	item, ok := selected.internal.(*router.Item)
	return item, ok
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			phrase := b.inputC.Value()
			b.searchSuggestion = mo.None[string]()
			return b, b.load(request{path: router.URLFor(router.RouteSearch, phrase), title: "Szukaj: " + phrase})
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.CursorEnd()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.searchSuggestion = mo.None[string]()
			b.previousState()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" && viper.GetBool(key.SearchShowQuerySuggestions) {
		if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != value {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.historyC.FilterState() != list.Filtering {
		selected, _ := b.historyC.SelectedItem().(*listItem)

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.historyC.FilterState() != list.Unfiltered {
				break
			}
			b.previousState()
			if b.current.path == "" {
				return b, b.load(request{path: router.RouteIndex, title: constant.Zalukaj})
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.play) && selected != nil:
			record := *selected.internal.(*history.Record)
			return b, b.load(request{path: record.URL, title: record.Title, record: &record})
		case bubblesKey.Matches(msg, b.keymap.remove) && selected != nil:
			record := selected.internal.(*history.Record)
			if err := history.Remove(record.URL); err != nil {
				log.Warn(err)
			}
			return b, b.loadHistory()
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.selectC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			selected, ok := b.selectC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			b.answer(b.indexOf(selected))
			b.setState(loadingState)
			return b, b.spinnerC.Tick
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.selectC.FilterState() != list.Unfiltered {
				break
			}
			b.answer(-1)
			b.setState(loadingState)
			return b, b.spinnerC.Tick
		}
	}

	b.selectC, cmd = b.selectC.Update(msg)
	return b, cmd
}

// indexOf finds the position of an option in the unfiltered prompt.
func (b *statefulBubble) indexOf(selected *listItem) int {
	for i, item := range b.selectC.Items() {
		if item == selected {
			return i
		}
	}
	return -1
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.shutdown()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
