package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/internal/ui"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/player"
	"github.com/zalukaj-cli/zalukaj/style"
	"github.com/zalukaj-cli/zalukaj/util"
)

// location is a directory that was browsed, kept so going back needs no request.
type location struct {
	path  string
	title string
	items []list.Item
	index int
}

// request is a route to open. record is set for playable routes.
type request struct {
	path   string
	title  string
	record *history.Record
}

// statefulBubble is the whole browser state.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	resume        state

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	browseC  list.Model
	selectC  list.Model
	historyC list.Model
	helpC    help.Model

	router    Dispatcher
	newPlayer func(name string) (player.Player, error)

	current   location
	locations util.Stack[location]
	series    string
	watched   map[string]float64

	loadID     int
	cancelLoad context.CancelFunc
	cancelPlay context.CancelFunc

	prompt  *promptMsg
	playing *history.Record

	progressStatus   string
	lastError        error
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	width, height int

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	log.Error(err)
	b.lastError = err
	if b.state.transient() {
		b.setState(b.resume)
	}
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current screen unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !b.state.transient() {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// suspend enters a transient state, remembering where to come back.
func (b *statefulBubble) suspend(s state) {
	if !b.state.transient() {
		b.resume = b.state
	}
	b.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.browseC.SetSize(listWidth, listHeight-detailLines)
	b.browseC.Help.Width = listWidth

	b.selectC.SetSize(listWidth, listHeight)
	b.selectC.Help.Width = listWidth

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// shutdown releases a pending prompt and stops running work.
func (b *statefulBubble) shutdown() {
	b.answer(-1)
	if b.cancelLoad != nil {
		b.cancelLoad()
	}
	if b.cancelPlay != nil {
		b.cancelPlay()
	}
}

func newBubble(options *Options, dispatcher Dispatcher) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		locations:     util.Stack[location]{},
		keymap:        keymap,
		router:        dispatcher,
		newPlayer:     player.New,
		watched:       make(map[string]float64),
		notifier:      &ui.Model{},
		options:       options,
	}

	makeList := func(title string, description bool, titleColor lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(titleColor).Padding(0, 1)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Tytuł filmu lub serialu"
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = "> "

	bubble.browseC = makeList(constant.Zalukaj, true, style.Lavender)
	bubble.browseC.SetStatusBarItemName("pozycja", "pozycje")

	bubble.selectC = makeList("", false, style.Peach)

	bubble.historyC = makeList("Historia", true, style.Yellow)
	bubble.historyC.SetStatusBarItemName("wpis", "wpisy")

	bubble.setState(browseState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
