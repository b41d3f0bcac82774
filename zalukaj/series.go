package zalukaj

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/zalukaj-cli/zalukaj/util"
)

var (
	seasonPattern  = regexp.MustCompile(`(?i)Sezon:\D*([0-9]+)`)
	episodePattern = regexp.MustCompile(`(?i)S(?P<season>[0-9]+)E(?P<episode>[0-9]+)`)
)

type TVSeries struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type Season struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// Episode is a single entry of a season listing. Season and Episode are 0
// when the label carries no SxxEyy marker.
type Episode struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Image   string `json:"image,omitempty"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
}

// FetchTVSeriesList returns every series linked from the home page menu.
func (c *Client) FetchTVSeriesList(ctx context.Context) ([]*TVSeries, error) {
	doc, err := c.get(ctx, c.base)
	if err != nil {
		return nil, err
	}

	series := make([]*TVSeries, 0)
	doc.Find("div#two table#main_menu a").Each(func(_ int, s *goquery.Selection) {
		series = append(series, &TVSeries{
			URL:   s.AttrOr("href", ""),
			Title: s.AttrOr("title", ""),
		})
	})
	return series, nil
}

// FetchTVSeriesSeasonsList returns the seasons of the series at link.
func (c *Client) FetchTVSeriesSeasonsList(ctx context.Context, link string) ([]*Season, error) {
	doc, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}

	thumb := c.thumbnail(doc)

	seasons := make([]*Season, 0)
	doc.Find("div#sezony a.sezon").Each(func(_ int, s *goquery.Selection) {
		seasons = append(seasons, &Season{
			URL:   s.AttrOr("href", ""),
			Title: seasonTitle(s.Text()),
			Image: thumb,
		})
	})
	return seasons, nil
}

// FetchTVSeriesEpisodesList returns the episodes of the season at link.
func (c *Client) FetchTVSeriesEpisodesList(ctx context.Context, link string) ([]*Episode, error) {
	doc, err := c.get(ctx, link)
	if err != nil {
		return nil, err
	}

	thumb := c.thumbnail(doc)

	episodes := make([]*Episode, 0)
	doc.Find("div.odcinkicat > div").Each(func(_ int, s *goquery.Selection) {
		anchor := s.Find("a").First()
		season, episode := seasonAndEpisode(s.Find("span.vinfo").First().Text())
		episodes = append(episodes, &Episode{
			URL:     anchor.AttrOr("href", ""),
			Title:   strings.TrimSpace(anchor.Text()),
			Image:   thumb,
			Season:  season,
			Episode: episode,
		})
	})
	return episodes, nil
}

// thumbnail returns the series cover shown next to season and episode listings.
func (c *Client) thumbnail(doc *goquery.Document) string {
	src, ok := doc.Find("div.blok2 div > img").First().Attr("src")
	if !ok {
		return ""
	}
	return c.absolute(src)
}

func seasonTitle(text string) string {
	text = strings.TrimSpace(text)
	match := seasonPattern.FindStringSubmatch(text)
	if match == nil {
		return text
	}

	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return text
	}
	return fmt.Sprintf("sezon %d", n)
}

func seasonAndEpisode(text string) (season, episode int) {
	groups := util.ReGroups(episodePattern, text)
	season, _ = strconv.Atoi(groups["season"])
	episode, _ = strconv.Atoi(groups["episode"])
	return season, episode
}
