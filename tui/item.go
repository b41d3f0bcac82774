package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/router"
	"github.com/zalukaj-cli/zalukaj/style"
)

// listItem adapts route items, history records and prompt options to list.Item.
type listItem struct {
	internal any

	// watched is the stored progress of a playable item, 0 when never played.
	watched float64
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *router.Item:
		var sb strings.Builder
		switch {
		case e.Folder:
			sb.WriteString(icon.Get(icon.Folder))
			sb.WriteString(" ")
		case e.Playable:
			sb.WriteString(icon.Get(icon.Play))
			sb.WriteString(" ")
		}
		sb.WriteString(e.Label)
		if t.watched > 0 {
			sb.WriteString(" ")
			sb.WriteString(progress(t.watched))
		}
		return sb.String()
	case *history.Record:
		if e.SeriesTitle != "" {
			return e.SeriesTitle
		}
		return e.Title
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *router.Item:
		var parts []string
		if e.Info.Season > 0 {
			parts = append(parts, fmt.Sprintf("Sezon %d", e.Info.Season))
		}
		if e.Info.Episode > 0 {
			parts = append(parts, fmt.Sprintf("Odcinek %d", e.Info.Episode))
		}
		if e.Info.Year > 0 {
			parts = append(parts, strconv.Itoa(e.Info.Year))
		}
		return style.Faint(strings.Join(parts, " • "))
	case *history.Record:
		var sb strings.Builder
		if e.Season > 0 || e.Episode > 0 {
			sb.WriteString(fmt.Sprintf("S%02dE%02d %s ", e.Season, e.Episode, e.Title))
		}
		sb.WriteString(progress(e.WatchedPercentage))
		sb.WriteString(style.Faint(" " + e.WatchedAt.Format("2006-01-02 15:04")))
		return sb.String()
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *router.Item:
		return e.Label
	case *history.Record:
		return e.SeriesTitle + " " + e.Title
	case string:
		return e
	default:
		return ""
	}
}

// progress renders a watched percentage, marking it done past the completion threshold.
func progress(percentage float64) string {
	threshold := viper.GetFloat64(key.PlayerCompletionPercentage)
	if threshold <= 0 {
		threshold = 80
	}

	if percentage >= threshold {
		return lipgloss.NewStyle().Foreground(style.Green).Render(icon.Get(icon.Success) + " obejrzane")
	}
	return lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("(%.0f%%)", percentage))
}
