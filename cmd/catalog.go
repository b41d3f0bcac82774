package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/query"
	"github.com/zalukaj-cli/zalukaj/style"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

func printJSON(cmd *cobra.Command, v any) {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	handleErr(encoder.Encode(v))
}

// listing registers a catalog command printing one "title<TAB>link" line per entry, or JSON.
func listing[T any](use, short string, args cobra.PositionalArgs, fetch func(*cobra.Command, *zalukaj.Client, []string) ([]T, error), line func(T) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := fetch(cmd, newClient(), args)
			handleErr(err)

			if lo.Must(cmd.Flags().GetBool("json")) {
				printJSON(cmd, entries)
				return
			}

			for _, entry := range entries {
				cmd.Println(line(entry))
			}
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Print the listing as JSON")
	cmd.SetOut(os.Stdout)
	rootCmd.AddCommand(cmd)
	return cmd
}

func init() {
	listing("series", "List every TV series", cobra.NoArgs,
		func(cmd *cobra.Command, c *zalukaj.Client, _ []string) ([]*zalukaj.TVSeries, error) {
			return c.FetchTVSeriesList(cmd.Context())
		},
		func(s *zalukaj.TVSeries) string {
			return fmt.Sprintf("%s\t%s", s.Title, style.Faint(s.URL))
		},
	)

	listing("seasons <link>", "List the seasons of a TV series", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *zalukaj.Client, args []string) ([]*zalukaj.Season, error) {
			return c.FetchTVSeriesSeasonsList(cmd.Context(), args[0])
		},
		func(s *zalukaj.Season) string {
			return fmt.Sprintf("%s\t%s", s.Title, style.Faint(s.URL))
		},
	)

	listing("episodes <link>", "List the episodes of a season", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *zalukaj.Client, args []string) ([]*zalukaj.Episode, error) {
			return c.FetchTVSeriesEpisodesList(cmd.Context(), args[0])
		},
		func(e *zalukaj.Episode) string {
			return fmt.Sprintf("S%02dE%02d %s\t%s", e.Season, e.Episode, e.Title, style.Faint(e.URL))
		},
	)

	listing("categories", "List the movie categories", cobra.NoArgs,
		func(cmd *cobra.Command, c *zalukaj.Client, _ []string) ([]*zalukaj.Category, error) {
			return c.FetchMovieCategoriesList(cmd.Context())
		},
		func(c *zalukaj.Category) string {
			return fmt.Sprintf("%s\t%s", c.Title, style.Faint(c.URL))
		},
	)

	listing("movies <link>", "List the movies of a category page", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *zalukaj.Client, args []string) ([]*zalukaj.Movie, error) {
			return c.FetchMoviesList(cmd.Context(), args[0])
		},
		movieLine,
	)

	search := listing("search <phrase>", "Search movies and series by title", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *zalukaj.Client, args []string) ([]*zalukaj.Movie, error) {
			return searchAndRemember(cmd.Context(), c, args[0])
		},
		movieLine,
	)
	search.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

type searcher interface {
	SearchMovies(ctx context.Context, phrase string) ([]*zalukaj.Movie, error)
}

// searchAndRemember keeps the phrase for suggestions only when the search went through.
func searchAndRemember(ctx context.Context, s searcher, phrase string) ([]*zalukaj.Movie, error) {
	movies, err := s.SearchMovies(ctx, phrase)
	if err != nil {
		return nil, err
	}
	return movies, query.Remember(phrase, 1)
}

func movieLine(m *zalukaj.Movie) string {
	var mark string
	switch {
	case m.Nav:
		mark = icon.Get(icon.Next)
	case m.TVSeries:
		mark = icon.Get(icon.Series)
	default:
		mark = icon.Get(icon.Movie)
	}

	title := m.Title
	if m.Year > 0 {
		title = fmt.Sprintf("%s (%d)", title, m.Year)
	}
	return fmt.Sprintf("%s %s\t%s", mark, title, style.Faint(m.URL))
}
