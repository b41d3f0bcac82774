package zalukaj

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	coverPattern      = regexp.MustCompile(`(?i)background-image:\s*url\(['"]?([^'")]+)['"]?\)`)
	searchYearPattern = regexp.MustCompile(`^\s*([0-9]{4})`)
	seriesLinkPattern = regexp.MustCompile(`.*/serial.*`)
)

type Category struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Movie is an entry of a movie listing or of search results.
//
// Nav entries are pagination links injected into listings; only URL and Title
// are set on them.
type Movie struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Year        int    `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	Nav         bool   `json:"nav,omitempty"`
	TVSeries    bool   `json:"tv_series,omitempty"`
}

// page is one neighbour of the current listing page.
type page struct {
	number int
	url    string
}

// FetchMovieCategoriesList returns the movie categories linked from the home page.
func (c *Client) FetchMovieCategoriesList(ctx context.Context) ([]*Category, error) {
	doc, err := c.get(ctx, c.base)
	if err != nil {
		return nil, err
	}

	categories := make([]*Category, 0)
	doc.Find("table#one td a").Each(func(_ int, s *goquery.Selection) {
		categories = append(categories, &Category{
			URL:   s.AttrOr("href", ""),
			Title: strings.TrimSpace(s.Text()),
		})
	})
	return categories, nil
}

// FetchMoviesList returns one page of a category listing.
//
// Links to the previous and next pages are placed both before and after the
// movies so they are reachable from either end of a long list.
func (c *Client) FetchMoviesList(ctx context.Context, link string) ([]*Movie, error) {
	doc, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}

	previous, next := c.pagination(doc.Find("div.categories_page").First())
	var nav []*Movie
	if previous != nil {
		nav = append(nav, &Movie{
			URL:   previous.url,
			Title: fmt.Sprintf("<< Wróć (strona %d) <<", previous.number),
			Nav:   true,
		})
	}
	if next != nil {
		nav = append(nav, &Movie{
			URL:   next.url,
			Title: fmt.Sprintf(">> Dalej (strona %d) >>", next.number),
			Nav:   true,
		})
	}

	movies := make([]*Movie, 0)
	movies = append(movies, nav...)

	doc.Find("div#index_content div.tivief4").Each(func(_ int, s *goquery.Selection) {
		anchor := s.Find("div.rmk23m4 h3 a").First()
		cover := s.Find("div.im23jf").First()
		movies = append(movies, &Movie{
			URL:         anchor.AttrOr("href", ""),
			Title:       anchor.AttrOr("title", ""),
			Image:       c.cover(cover),
			Year:        atoi(cover.Find("p span").First().Text()),
			Description: strings.TrimSpace(s.Find("div.rmk23m4 > div").First().Text()),
		})
	})

	for _, n := range nav {
		copied := *n
		movies = append(movies, &copied)
	}

	return movies, nil
}

// SearchMovies returns movies and series matching phrase.
func (c *Client) SearchMovies(ctx context.Context, phrase string) ([]*Movie, error) {
	doc, err := c.get(ctx, "/v2/ajax/load.search?html=1&q="+url.QueryEscape(phrase))
	if err != nil {
		return nil, err
	}

	movies := make([]*Movie, 0)
	doc.Find("div.row").Each(func(_ int, s *goquery.Selection) {
		anchor := s.Find("div.details div.title a").First()
		if anchor.Length() == 0 {
			return
		}

		href := anchor.AttrOr("href", "")
		movies = append(movies, &Movie{
			URL:         c.absolute(href),
			Title:       anchor.AttrOr("title", ""),
			Image:       s.Find("div.thumb img").First().AttrOr("src", ""),
			Year:        searchYear(s.Find("div.details div.gen").First().Text()),
			Description: strings.TrimSpace(s.Find("div.desc").First().Text()),
			TVSeries:    seriesLinkPattern.MatchString(href),
		})
	})
	return movies, nil
}

// pagination finds the numeric links adjacent to the current page marker.
func (c *Client) pagination(nav *goquery.Selection) (previous, next *page) {
	current := atoi(nav.Find("span.pc_current").First().Text())
	if current == 0 {
		return nil, nil
	}

	nav.Find("a").Each(func(_ int, s *goquery.Selection) {
		number, err := strconv.Atoi(strings.TrimSpace(s.Text()))
		if err != nil {
			return
		}

		switch number {
		case current - 1:
			previous = &page{number: number, url: c.absolute(s.AttrOr("href", ""))}
		case current + 1:
			next = &page{number: number, url: c.absolute(s.AttrOr("href", ""))}
		}
	})
	return previous, next
}

func (c *Client) cover(s *goquery.Selection) string {
	match := coverPattern.FindStringSubmatch(s.AttrOr("style", ""))
	if match == nil {
		return ""
	}
	return c.absolute(match[1])
}

func searchYear(text string) int {
	match := searchYearPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	return atoi(match[1])
}

// atoi parses trimmed text, returning 0 for anything that is not a number.
func atoi(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return n
}
