package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/inline"
	"github.com/zalukaj-cli/zalukaj/router"
	"github.com/zalukaj-cli/zalukaj/util"
)

var inlineRoutes = []string{
	router.RouteIndex,
	router.RouteTVSeries,
	router.RouteSeasons,
	router.RouteEpisodes,
	router.RoutePlayEpisode,
	router.RouteMovies,
	router.RoutePlayMovie,
	router.RouteSearch,
	router.RouteAccount,
}

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("path", "P", router.RouteIndex, "Route path to dispatch")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().String("pick", "", "Answer prompts with a selector instead of the first option")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	_ = inlineCmd.RegisterFlagCompletionFunc("path", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return inlineRoutes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = inlineCmd.RegisterFlagCompletionFunc("pick", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "last", "exact:"}, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	})
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Dispatch a single route path without the interactive interface",
	Long: `Dispatch a single route path and print what it produced.

Listings are printed one item per line as "label<TAB>path", so any printed path
can be passed back with --path. Play paths print the resolved stream URL.

Prompt selectors (--pick):
  first - first option
  last - last option
  [number] - option by index (starting from 0)
  exact:[label] - option whose label matches, ignoring case`,
	Example: `  zalukaj inline
  zalukaj inline --path /tv-series --json
  zalukaj inline --path /search/matrix --pick "exact:720p"`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			writer io.Writer = os.Stdout
			err    error
		)

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		pick := mo.None[inline.Picker]()
		if selector := lo.Must(cmd.Flags().GetString("pick")); selector != "" {
			fn, err := inline.ParsePicker(selector)
			handleErr(err)
			pick = mo.Some(fn)
		}

		options := &inline.Options{
			Out:  writer,
			Path: lo.Must(cmd.Flags().GetString("path")),
			Json: lo.Must(cmd.Flags().GetBool("json")),
			Pick: pick,
		}

		host := inline.NewHost(os.Stderr, pick)
		err = inline.Run(cmd.Context(), newRouter(host), host, options)
		handleErr(err)
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the --json output",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(inline.Schema()))
	},
}
