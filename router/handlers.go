package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/query"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

// Login returns the signed-in user, signing in with the configured
// credentials when the saved session is gone.
func (r *Router) Login(ctx context.Context) (*zalukaj.User, error) {
	user, err := r.catalog.FetchUserData(ctx)
	if err != nil {
		return nil, err
	}
	if user.IsLogged() {
		return user, nil
	}

	username, password, err := r.credentials()
	if err != nil {
		log.Warn(err)
		r.host.Notify(HeaderLoginFailed, "Podczas logowania wystąpił problem.")
		return &zalukaj.User{}, nil
	}

	user, err = r.catalog.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if user.IsLogged() {
		r.host.Notify(HeaderLoggedIn, fmt.Sprintf("Witaj %s", user.Name))
	} else {
		r.host.Notify(HeaderLoginFailed, "Podczas logowania wystąpił problem.")
	}
	return user, nil
}

func (r *Router) index(ctx context.Context) (*Directory, error) {
	dir := &Directory{Content: ContentMovies, Items: []*Item{}}

	if !r.login {
		r.host.Notify(HeaderVIPOnly, "Aktualnie dostępne tylko dla zalogowanych. Aby oglądać filmy włącz logowanie w ustawieniach.")
		if err := r.catalog.Logout(); err != nil {
			return nil, err
		}
		return dir, nil
	}

	user, err := r.Login(ctx)
	if err != nil {
		return nil, err
	}

	if !user.IsLogged() {
		return dir, nil
	}

	if !user.IsPremium() {
		r.host.Notify(HeaderVIPOnly, "Przeglądanie katalogu wymaga konta VIP.")
		return dir, nil
	}

	dir.Items = append(dir.Items,
		&Item{Label: fmt.Sprintf("%s - %s", strings.ToLower(user.Name), user.AccountType), Path: URLFor(RouteAccount), Folder: true},
		&Item{Label: "Seriale", Path: URLFor(RouteTVSeries), Folder: true},
		&Item{Label: "Filmy", Path: URLFor(RouteMovies), Folder: true},
		&Item{Label: "Szukaj", Path: URLFor(RouteSearch), Folder: true},
	)
	return dir, nil
}

func (r *Router) account(ctx context.Context) (*Directory, error) {
	dir := &Directory{Content: ContentFiles, Items: []*Item{}}

	user, err := r.catalog.FetchUserData(ctx)
	if err != nil {
		return nil, err
	}

	if user.IsLogged() {
		dir.Items = append(dir.Items,
			&Item{Label: user.Name},
			&Item{Label: "Typ konta: " + user.AccountType},
		)
	}
	return dir, nil
}

func (r *Router) tvSeries(ctx context.Context) (*Directory, error) {
	series, err := r.series.GetOrFetch(RouteTVSeries, func() ([]*zalukaj.TVSeries, error) {
		return r.catalog.FetchTVSeriesList(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &Directory{
		Content: ContentTVShows,
		Items: lo.Map(series, func(s *zalukaj.TVSeries, _ int) *Item {
			return &Item{Label: s.Title, Path: URLFor(RouteSeasons, s.URL), Folder: true}
		}),
	}, nil
}

func (r *Router) seasonsOf(ctx context.Context, link string) (*Directory, error) {
	seasons, err := r.seasons.GetOrFetch(link, func() ([]*zalukaj.Season, error) {
		return r.catalog.FetchTVSeriesSeasonsList(ctx, link)
	})
	if err != nil {
		return nil, err
	}

	return &Directory{
		Content: ContentTVShows,
		Items: lo.Map(seasons, func(s *zalukaj.Season, _ int) *Item {
			return &Item{Label: s.Title, Path: URLFor(RouteEpisodes, s.URL), Art: s.Image, Folder: true}
		}),
	}, nil
}

func (r *Router) episodesOf(ctx context.Context, link string) (*Directory, error) {
	episodes, err := r.catalog.FetchTVSeriesEpisodesList(ctx, link)
	if err != nil {
		return nil, err
	}

	return &Directory{
		Content: ContentTVShows,
		Items: lo.Map(episodes, func(e *zalukaj.Episode, _ int) *Item {
			return &Item{
				Label:    e.Title,
				Path:     URLFor(RoutePlayEpisode, e.URL, e.Title),
				Art:      e.Image,
				Info:     Info{Season: e.Season, Episode: e.Episode},
				Playable: true,
			}
		}),
	}, nil
}

func (r *Router) movieCategories(ctx context.Context) (*Directory, error) {
	categories, err := r.categories.GetOrFetch(RouteMovies, func() ([]*zalukaj.Category, error) {
		return r.catalog.FetchMovieCategoriesList(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &Directory{
		Content: ContentMovies,
		Items: lo.Map(categories, func(c *zalukaj.Category, _ int) *Item {
			return &Item{Label: c.Title, Path: URLFor(RouteMovies, c.URL), Folder: true}
		}),
	}, nil
}

func (r *Router) movies(ctx context.Context, link string) (*Directory, error) {
	movies, err := r.catalog.FetchMoviesList(ctx, link)
	if err != nil {
		return nil, err
	}

	return &Directory{Content: ContentMovies, Items: lo.Map(movies, movieItem)}, nil
}

func (r *Router) search(ctx context.Context, phrase string) (*Directory, error) {
	movies, err := r.catalog.SearchMovies(ctx, phrase)
	if err != nil {
		return nil, err
	}

	if err := query.Remember(phrase, 1); err != nil {
		log.Warn(err)
	}

	return &Directory{Content: ContentMovies, Items: lo.Map(movies, movieItem)}, nil
}

// searchHistory lists remembered phrases, most used first.
func (r *Router) searchHistory() (*Directory, error) {
	return &Directory{
		Content: ContentFiles,
		Items: lo.Map(query.SuggestMany(""), func(phrase string, _ int) *Item {
			return &Item{Label: phrase, Path: URLFor(RouteSearch, phrase), Folder: true}
		}),
	}, nil
}

func movieItem(m *zalukaj.Movie, _ int) *Item {
	switch {
	case m.Nav:
		return &Item{Label: m.Title, Path: URLFor(RouteMovies, m.URL), Folder: true}
	case m.TVSeries:
		return &Item{
			Label:  m.Title,
			Path:   URLFor(RouteSeasons, m.URL),
			Art:    m.Image,
			Info:   Info{Year: m.Year, Plot: m.Description},
			Folder: true,
		}
	default:
		return &Item{
			Label:    m.Title,
			Path:     URLFor(RoutePlayMovie, m.URL, m.Title),
			Art:      m.Image,
			Info:     Info{Year: m.Year, Plot: m.Description},
			Playable: true,
		}
	}
}
