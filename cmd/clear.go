package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/internal/cache"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/network"
	"github.com/zalukaj-cli/zalukaj/query"
	"github.com/zalukaj-cli/zalukaj/util"
	"github.com/zalukaj-cli/zalukaj/where"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

var clearTargets = []clearTarget{
	{"listings cache", "cache", mo.Some("c"), clearCache},
	{"watch history", "history", mo.Some("s"), history.Clear},
	{"queries history", "queries", mo.Some("q"), query.Clear},
	{"session cookies", "cookies", mo.None[string](), clearCookies},
}

func clearCache() error {
	size := cache.Size()
	if err := cache.Clear(); err != nil {
		return err
	}
	log.Infof("removed %d bytes of cached listings", size)
	return nil
}

func clearCookies() error {
	jar, err := network.NewJar(constant.SiteURL, where.Cookies())
	if err != nil {
		return err
	}
	jar.Clear()
	return jar.Save()
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached listings, history, queries or the session",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := target.clear()
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
