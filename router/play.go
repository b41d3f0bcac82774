package router

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

const unplayable = "Nie można odtworzyć filmu."

// play resolves a title page to a single stream, asking the host to choose
// between versions and qualities unless a configured preference matches.
func (r *Router) play(ctx context.Context, link, title string, episode bool) (*Result, error) {
	fetch, fetchFromPlayer := r.catalog.FetchMovieDetails, r.catalog.FetchMovieFromPlayer
	if episode {
		fetch, fetchFromPlayer = r.catalog.FetchSeriesSingleMovie, r.catalog.FetchSeriesSingleMovieFromPlayer
	}

	unresolved := &Result{Resolved: &Resolved{}}

	player, err := fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	var version string
	if player != nil && len(player.Versions) > 1 {
		i, err := r.choose(TitleSelectVersion, player.VersionNames(), r.version)
		if err != nil || i < 0 {
			return unresolved, cancelled(err)
		}

		version = player.Versions[i].Name
		player, err = fetchFromPlayer(ctx, player.Versions[i].URL)
		if err != nil {
			return nil, err
		}
	}

	if player == nil || len(player.Streams) == 0 {
		r.host.Notify(HeaderPlayback, unplayable)
		return unresolved, nil
	}

	stream := player.Streams[0]
	if len(player.Streams) > 1 {
		i, err := r.choose(TitleSelectQuality, player.Qualities(), r.quality)
		if err != nil || i < 0 {
			return unresolved, cancelled(err)
		}
		stream = player.Streams[i]
	}

	return &Result{Resolved: &Resolved{
		URL:     stream.URL,
		Title:   title,
		Quality: stream.Quality,
		Version: version,
		Headers: r.streamHeaders(),
	}}, nil
}

// choose returns the index of the preferred option, asking the host when none matches.
func (r *Router) choose(title string, options []string, preferred string) (int, error) {
	if i := preferredIndex(options, preferred); i >= 0 {
		return i, nil
	}
	return r.host.Select(title, options)
}

// preferredIndex matches case-insensitively, exact labels first, then substrings.
func preferredIndex(options []string, preferred string) int {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	if preferred == "" {
		return -1
	}

	_, i, ok := lo.FindIndexOf(options, func(o string) bool {
		return strings.ToLower(o) == preferred
	})
	if ok {
		return i
	}

	_, i, ok = lo.FindIndexOf(options, func(o string) bool {
		return strings.Contains(strings.ToLower(o), preferred)
	})
	if ok {
		return i
	}
	return -1
}

// cancelled swallows ErrCancelled so backing out of a prompt is not a failure.
func cancelled(err error) error {
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}

// streamHeaders are the headers an external player needs to fetch the stream.
func (r *Router) streamHeaders() map[string]string {
	headers := map[string]string{"Referer": strings.TrimSuffix(r.catalog.BaseURL(), "/") + "/"}
	if cookies := r.catalog.Cookies(); cookies != "" {
		headers["Cookie"] = cookies
	}
	return headers
}

var _ Catalog = (*zalukaj.Client)(nil)
