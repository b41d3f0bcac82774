package router

import "errors"

// Notification headers.
const (
	HeaderLoggedIn    = "Zalogowano"
	HeaderLoginFailed = "Błąd logowania"
	HeaderError       = "Błąd"
	HeaderPlayback    = "Błąd odtwarzania"
	HeaderVIPOnly     = "Dostęp tylko dla konta VIP"
)

// Selection prompts.
const (
	TitleSelectVersion = "Wybór wersji wideo"
	TitleSelectQuality = "Wybór jakości wideo"
)

// ErrCancelled may be returned by Host.Select when the user backs out.
var ErrCancelled = errors.New("selection cancelled")

// Host is the front end a route reports to.
type Host interface {
	// Notify shows a short message to the user.
	Notify(header, message string)

	// Select asks the user to pick one of options and returns its index.
	// A negative index or ErrCancelled means nothing was picked.
	Select(title string, options []string) (int, error)
}

// Info is the metadata shown next to an item.
type Info struct {
	Season  int    `json:"season,omitempty"`
	Episode int    `json:"episode,omitempty"`
	Year    int    `json:"year,omitempty"`
	Plot    string `json:"plot,omitempty"`
}

// Item is one entry of a Directory. Folder items lead to another directory,
// playable ones to a Resolved stream.
type Item struct {
	Label    string `json:"label"`
	Path     string `json:"path,omitempty"`
	Art      string `json:"art,omitempty"`
	Info     Info   `json:"info"`
	Playable bool   `json:"playable,omitempty"`
	Folder   bool   `json:"folder,omitempty"`
}

// Directory is a listing produced by a route.
type Directory struct {
	Content string  `json:"content"`
	Items   []*Item `json:"items"`
}

// Resolved is the outcome of a play route. An empty URL means nothing can be played.
type Resolved struct {
	URL     string            `json:"url,omitempty"`
	Title   string            `json:"title,omitempty"`
	Quality string            `json:"quality,omitempty"`
	Version string            `json:"version,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// OK reports whether a stream was resolved.
func (r *Resolved) OK() bool {
	return r != nil && r.URL != ""
}
