package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zalukaj-cli/zalukaj/history"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/style"
	"github.com/zalukaj-cli/zalukaj/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.SetOut(os.Stdout)
	historyCmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	historyCmd.Flags().IntP("limit", "n", 0, "Show only the most recent entries")
	historyCmd.Flags().StringP("remove", "r", "", "Remove the entry with the given path")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show what was played, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		if path := lo.Must(cmd.Flags().GetString("remove")); path != "" {
			handleErr(history.Remove(path))
			return
		}

		records, err := history.Recent()
		handleErr(err)

		total := len(records)
		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && limit < len(records) {
			records = records[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, records)
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("History is empty"))
			return
		}

		for _, r := range records {
			cmd.Println(fmt.Sprintf("%s %s %s", icon.Get(icon.Play), r, style.Faint(r.WatchedAt.Format("2006-01-02 15:04"))))
			cmd.Println(style.Faint("  " + r.URL))
		}

		if total > len(records) {
			cmd.Println(style.Faint(fmt.Sprintf("showing %d of %s", len(records), util.Quantify(total, "entry", "entries"))))
		}
	},
}
