package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/auth"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/internal/cache"
	"github.com/screenroom/screenroom/util"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/cobra"
)

// wipe is something the clear command can remove.
type wipe struct {
	what  string
	flag  string
	short string
	run   func() error
}

func removeAll(path func() string) func() error {
	return func() error { return filesystem.API().RemoveAll(path()) }
}

var wipes = []wipe{
	{what: "cache directory", flag: "cache", short: "c", run: removeAll(where.Cache)},
	{what: "source cache", flag: "source-cache", short: "s", run: cache.Clear},
	{what: "queries history", flag: "queries", short: "q", run: removeAll(where.Queries)},
	{what: "stored credentials", flag: "credentials", run: auth.Delete},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, w := range wipes {
		clearCmd.Flags().BoolP(w.flag, w.short, false, "Clear the "+w.what)
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached data and stored credentials",
	Run: func(cmd *cobra.Command, args []string) {
		chosen := lo.Filter(wipes, func(w wipe, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(w.flag))
		})
		if len(chosen) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, w := range chosen {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing the %s...", icon.Get(icon.Progress), w.what))
			err := w.run()
			erase()
			handleErr(err)

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(w.what))
		}
	},
}
