package zalukaj

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// Stream is a direct video link of one quality.
type Stream struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// Version is an alternative audio or subtitle variant of the same title,
// served by its own player page.
type Version struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Player is what a playable player page offers.
type Player struct {
	Streams  []*Stream  `json:"streams"`
	Versions []*Version `json:"versions"`
}

// Qualities returns the stream labels in page order.
func (p *Player) Qualities() []string {
	return lo.Map(p.Streams, func(s *Stream, _ int) string { return s.Quality })
}

// VersionNames returns the version labels in page order.
func (p *Player) VersionNames() []string {
	return lo.Map(p.Versions, func(v *Version, _ int) string { return v.Name })
}

// FetchMovieDetails finds the player embedded in the title page at link and
// reads its streams.
func (c *Client) FetchMovieDetails(ctx context.Context, link string) (*Player, error) {
	doc, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}

	src, ok := doc.Find("iframe").First().Attr("src")
	if !ok {
		return nil, newError("player frame not found", nil)
	}

	return c.FetchMovieFromPlayer(ctx, src+"&x=1")
}

// FetchMovieFromPlayer reads the streams of a player page.
//
// Only accounts allowed to watch get <source> tags; for everyone else the
// result is nil without an error.
func (c *Client) FetchMovieFromPlayer(ctx context.Context, link string) (*Player, error) {
	doc, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}

	sources := doc.Find("source")
	if sources.Length() == 0 {
		return nil, nil
	}

	player := &Player{
		Streams:  make([]*Stream, 0),
		Versions: make([]*Version, 0),
	}

	sources.Each(func(_ int, s *goquery.Selection) {
		label, hasLabel := s.Attr("label")
		src, hasSrc := s.Attr("src")
		if !hasLabel || !hasSrc {
			return
		}
		player.Streams = append(player.Streams, &Stream{Quality: label, URL: src})
	})

	doc.Find("div#buttonsPL a").Each(func(_ int, s *goquery.Selection) {
		player.Versions = append(player.Versions, &Version{
			Name: strings.TrimSpace(s.Text()),
			URL:  s.AttrOr("href", ""),
		})
	})

	return player, nil
}

// FetchSeriesSingleMovie resolves the player of a series episode.
func (c *Client) FetchSeriesSingleMovie(ctx context.Context, link string) (*Player, error) {
	return c.FetchMovieDetails(ctx, link)
}

// FetchSeriesSingleMovieFromPlayer reads the streams of an episode player page.
func (c *Client) FetchSeriesSingleMovieFromPlayer(ctx context.Context, link string) (*Player, error) {
	return c.FetchMovieFromPlayer(ctx, link)
}
