package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/color"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/player"
	"github.com/zalukaj-cli/zalukaj/router"
	"github.com/zalukaj-cli/zalukaj/style"
	"github.com/zalukaj-cli/zalukaj/tui"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.SetOut(os.Stdout)
	playCmd.Flags().BoolP("movie", "m", false, "The link is a movie page rather than a series episode")
	playCmd.Flags().StringP("title", "t", "", "Title shown by the player and saved to the history")
	playCmd.Flags().BoolP("print", "p", false, "Print the stream URL instead of playing it")
	playCmd.Flags().StringP("version", "V", "", "Preferred video version (e.g. Lektor)")
	lo.Must0(viper.BindPFlag(key.VideoVersion, playCmd.Flags().Lookup("version")))
}

var playCmd = &cobra.Command{
	Use:   "play <link>",
	Short: "Play an episode or a movie page",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		route := router.RoutePlayEpisode
		if lo.Must(cmd.Flags().GetBool("movie")) {
			route = router.RoutePlayMovie
		}

		title := lo.Must(cmd.Flags().GetString("title"))
		path := router.URLFor(route, args[0], title)

		result, err := newRouter(promptHost{}).Dispatch(cmd.Context(), path)
		if errors.Is(err, context.Canceled) {
			return
		}
		handleErr(err)
		if !result.Resolved.OK() {
			handleErr(errors.New("nothing to play"))
		}
		resolved := result.Resolved

		if lo.Must(cmd.Flags().GetBool("print")) {
			cmd.Println(resolved.URL)
			return
		}

		checkPlayer()
		p, err := player.New(viper.GetString(key.Player))
		handleErr(err)

		if title == "" {
			title = args[0]
		}
		record := &history.Record{Title: title, URL: path}

		fmt.Printf("%s %s %s\n", icon.Get(icon.Play), style.Fg(color.Purple)(title), style.Faint(resolved.Quality))
		percentage, err := player.Watch(cmd.Context(), p, resolved.URL, resolved.Title, resolved.Headers)
		if err != nil && !errors.Is(err, context.Canceled) {
			handleErr(err)
		}

		if viper.GetBool(key.HistorySaveOnPlay) {
			handleErr(history.Save(record, percentage))
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().BoolP("continue", "c", false, "Start at the watch history")
	browseCmd.Flags().StringP("path", "P", "", "Route to open first, e.g. /tv-series")
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Run: func(cmd *cobra.Command, args []string) {
		browse(lo.Must(cmd.Flags().GetBool("continue")), lo.Must(cmd.Flags().GetString("path")))
	},
}

func browse(continueHistory bool, path string) {
	checkPlayer()

	handleErr(tui.Run(&tui.Options{
		Router: func(host router.Host) tui.Dispatcher {
			return newRouter(host)
		},
		Player:   viper.GetString(key.Player),
		Path:     path,
		Continue: continueHistory,
	}))
}
