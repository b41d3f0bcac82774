// Package router maps plugin-style paths to catalog calls.
//
// Every front end (the CLI, the interactive browser and inline mode) walks the
// catalog through Dispatch, so listings, stream selection and error reporting
// behave the same everywhere.
package router

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalukaj-cli/zalukaj/internal/cache"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

// Routes.
const (
	RouteIndex       = "/"
	RouteTVSeries    = "/tv-series"
	RouteSeasons     = "/tv-series/seasons"
	RouteEpisodes    = "/tv-series/episodes"
	RoutePlayEpisode = "/tv-series/play"
	RouteMovies      = "/movies"
	RoutePlayMovie   = "/movies/play"
	RouteSearch      = "/search"
	RouteAccount     = "/account"
)

// Content kinds of a Directory.
const (
	ContentMovies  = "movies"
	ContentTVShows = "tvshows"
	ContentFiles   = "files"
)

// ErrNotFound is returned for paths no route matches.
var ErrNotFound = errors.New("no route for path")

// Catalog is the part of the scraping client the routes call.
type Catalog interface {
	BaseURL() string
	Cookies() string
	Login(ctx context.Context, username, password string) (*zalukaj.User, error)
	Logout() error
	FetchUserData(ctx context.Context) (*zalukaj.User, error)
	FetchTVSeriesList(ctx context.Context) ([]*zalukaj.TVSeries, error)
	FetchTVSeriesSeasonsList(ctx context.Context, link string) ([]*zalukaj.Season, error)
	FetchTVSeriesEpisodesList(ctx context.Context, link string) ([]*zalukaj.Episode, error)
	FetchMovieCategoriesList(ctx context.Context) ([]*zalukaj.Category, error)
	FetchMoviesList(ctx context.Context, link string) ([]*zalukaj.Movie, error)
	SearchMovies(ctx context.Context, phrase string) ([]*zalukaj.Movie, error)
	FetchMovieDetails(ctx context.Context, link string) (*zalukaj.Player, error)
	FetchMovieFromPlayer(ctx context.Context, link string) (*zalukaj.Player, error)
	FetchSeriesSingleMovie(ctx context.Context, link string) (*zalukaj.Player, error)
	FetchSeriesSingleMovieFromPlayer(ctx context.Context, link string) (*zalukaj.Player, error)
}

// Credentials supplies the account used when signing in.
type Credentials func() (username, password string, err error)

// Options configures a Router.
type Options struct {
	Catalog     Catalog
	Host        Host
	Credentials Credentials

	// Login enables signing in from the index route. When false the index
	// explains that only signed-in VIP accounts can browse and drops the session.
	Login bool

	// PreferredQuality and PreferredVersion pick a stream or version without
	// asking the host when a label matches.
	PreferredQuality string
	PreferredVersion string
}

type Router struct {
	catalog     Catalog
	host        Host
	credentials Credentials
	login       bool
	quality     string
	version     string

	series     *cache.Listing[[]*zalukaj.TVSeries]
	seasons    *cache.Listing[[]*zalukaj.Season]
	categories *cache.Listing[[]*zalukaj.Category]
}

func New(opts Options) *Router {
	credentials := opts.Credentials
	if credentials == nil {
		credentials = func() (string, string, error) {
			return "", "", errors.New("no credentials configured")
		}
	}

	return &Router{
		catalog:     opts.Catalog,
		host:        opts.Host,
		credentials: credentials,
		login:       opts.Login,
		quality:     opts.PreferredQuality,
		version:     opts.PreferredVersion,
		series:      cache.NewListing[[]*zalukaj.TVSeries]("series"),
		seasons:     cache.NewListing[[]*zalukaj.Season]("seasons"),
		categories:  cache.NewListing[[]*zalukaj.Category]("categories"),
	}
}

// Encode turns a site link into a path segment.
func Encode(link string) string {
	return base64.URLEncoding.EncodeToString([]byte(link))
}

// Decode reverses Encode.
func Decode(segment string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(segment)
	if err != nil {
		return "", fmt.Errorf("decode link: %w", err)
	}
	return string(decoded), nil
}

// URLFor builds the path of route. Link routes take the site link as their
// only argument, search takes the phrase. Play routes accept an optional
// second argument with the title to show while playing.
func URLFor(route string, args ...string) string {
	if len(args) == 0 || args[0] == "" {
		return route
	}

	var path string
	switch route {
	case RouteSearch:
		path = route + "/" + url.PathEscape(args[0])
	default:
		path = route + "/" + Encode(args[0])
	}

	if len(args) > 1 && args[1] != "" && (route == RoutePlayMovie || route == RoutePlayEpisode) {
		path += "?" + url.Values{"title": {args[1]}}.Encode()
	}
	return path
}

// Result is what a route produces: a listing to browse or a stream to play.
type Result struct {
	Directory *Directory `json:"directory,omitempty"`
	Resolved  *Resolved  `json:"resolved,omitempty"`
}

// Dispatch runs the route matching path.
//
// Catalog failures are reported to the host and produce an empty result, so
// the returned error only covers bad paths and cancelled contexts.
func (r *Router) Dispatch(ctx context.Context, path string) (*Result, error) {
	title := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		query, _ := url.ParseQuery(path[i+1:])
		title = query.Get("title")
		path = path[:i]
	}

	if path != RouteIndex {
		path = strings.TrimSuffix(path, "/")
	}
	log.Debugf("dispatching %s", path)

	result, err := r.dispatch(ctx, path, title)
	if err == nil {
		return result, nil
	}

	// a cancelled request comes back wrapped in a site error
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	var siteErr *zalukaj.Error
	if errors.As(err, &siteErr) {
		log.Error(err)
		r.host.Notify(HeaderError, siteErr.Message)
		if strings.HasPrefix(path, RoutePlayMovie) || strings.HasPrefix(path, RoutePlayEpisode) {
			return &Result{Resolved: &Resolved{}}, nil
		}
		return &Result{Directory: &Directory{Items: []*Item{}}}, nil
	}

	return nil, err
}

func (r *Router) dispatch(ctx context.Context, path, title string) (*Result, error) {
	directory := func(d *Directory, err error) (*Result, error) {
		if err != nil {
			return nil, err
		}
		return &Result{Directory: d}, nil
	}

	withLink := func(prefix string, handle func(string) (*Result, error)) (*Result, bool, error) {
		segment, ok := strings.CutPrefix(path, prefix+"/")
		if !ok {
			return nil, false, nil
		}
		link, err := Decode(segment)
		if err != nil {
			return nil, true, err
		}
		result, err := handle(link)
		return result, true, err
	}

	switch path {
	case RouteIndex, "":
		return directory(r.index(ctx))
	case RouteTVSeries:
		return directory(r.tvSeries(ctx))
	case RouteMovies:
		return directory(r.movieCategories(ctx))
	case RouteSearch:
		return directory(r.searchHistory())
	case RouteAccount:
		return directory(r.account(ctx))
	}

	routes := []struct {
		prefix string
		handle func(string) (*Result, error)
	}{
		{RouteSeasons, func(link string) (*Result, error) { return directory(r.seasonsOf(ctx, link)) }},
		{RouteEpisodes, func(link string) (*Result, error) { return directory(r.episodesOf(ctx, link)) }},
		{RoutePlayEpisode, func(link string) (*Result, error) { return r.play(ctx, link, title, true) }},
		{RoutePlayMovie, func(link string) (*Result, error) { return r.play(ctx, link, title, false) }},
		{RouteMovies, func(link string) (*Result, error) { return directory(r.movies(ctx, link)) }},
	}

	for _, route := range routes {
		if result, matched, err := withLink(route.prefix, route.handle); matched {
			return result, err
		}
	}

	if phrase, ok := strings.CutPrefix(path, RouteSearch+"/"); ok {
		phrase, err := url.PathUnescape(phrase)
		if err != nil {
			return nil, fmt.Errorf("decode phrase: %w", err)
		}
		return directory(r.search(ctx, phrase))
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}
