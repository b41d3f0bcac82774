package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/zalukaj-cli/zalukaj/color"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/router"
	"github.com/zalukaj-cli/zalukaj/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// detailLines is the height reserved under the browser for the plot of the selected item.
const detailLines = 3

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case browseState:
		output = b.viewBrowse()
	case searchState:
		output = b.viewSearch()
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case selectState:
		output = listExtraPaddingStyle.Render(b.selectC.View())
	case playState:
		output = b.viewPlay()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Wczytywanie"),
			"",
			b.spinnerC.View() + " " + style.Truncate(b.width)(b.progressStatus),
		},
	)
}

func (b *statefulBubble) viewBrowse() string {
	view := b.browseC.View()

	if plot := b.selectedPlot(); plot != "" {
		wrapped := wordwrap.String(plot, b.width)
		lines := strings.Split(wrapped, "\n")
		if len(lines) > detailLines {
			lines = lines[:detailLines]
			lines[detailLines-1] = truncate.StringWithTail(lines[detailLines-1], uint(b.width), "…")
		}
		view += "\n" + style.Faint(strings.Join(lines, "\n"))
	}

	return listExtraPaddingStyle.Render(view)
}

func (b *statefulBubble) selectedPlot() string {
	selected, ok := b.browseC.SelectedItem().(*listItem)
	if !ok {
		return ""
	}
	item, ok := selected.internal.(*router.Item)
	if !ok {
		return ""
	}
	return item.Info.Plot
}

func (b *statefulBubble) viewSearch() string {
	input := b.inputC.View()
	if suggestion, ok := b.searchSuggestion.Get(); ok {
		input += "\n\n" + style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion))
	}

	return b.renderLines(true, []string{
		style.Title("Szukaj"),
		"",
		input,
	})
}

func (b *statefulBubble) viewPlay() string {
	title := b.progressStatus
	if title == "" && b.playing != nil {
		title = b.playing.Title
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Odtwarzanie"),
			"",
			style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Progress), style.Fg(color.Purple)(title))),
			"",
			b.spinnerC.View() + " " + style.Faint("esc zatrzymuje odtwarzanie"),
		},
	)
}

func (b *statefulBubble) viewError() string {
	var message string
	if b.lastError != nil {
		message = b.lastError.Error()
	}

	errorMsg := wordwrap.String(style.Fg(color.Red)(message), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Błąd"),
			"",
			icon.Get(icon.Fail) + " " + errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
