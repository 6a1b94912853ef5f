package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/cobra"
)

// location is a directory or file the where command can print.
type location struct {
	title  string
	flag   string
	short  string
	path   func() string
	hidden bool
}

var locations = []location{
	{title: "Config", flag: "config", short: "c", path: where.Config},
	{title: "Sources", flag: "sources", short: "s", path: where.Sources},
	{title: "Logs", flag: "logs", short: "l", path: where.Logs},
	{title: "Cache", flag: "cache", path: where.Cache, hidden: true},
	{title: "Source cache", flag: "source-cache", path: where.LuaCache, hidden: true},
	{title: "Queries", flag: "queries", path: where.Queries, hidden: true},
	{title: "Temp", flag: "temp", path: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag, l.short, false, "Print the "+l.title+" path only")
		if l.hidden {
			lo.Must0(flags.MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where screenroom keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		if chosen, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			fmt.Fprintln(out, chosen.path())
			return
		}

		title := style.New().Bold(true).Foreground(color.HiPurple).Render
		flag := style.Fg(color.Yellow)

		shown := lo.Reject(locations, func(l location, _ int) bool { return l.hidden })
		for i, l := range shown {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s %s\n%s\n", title(l.title), flag("--"+l.flag), l.path())
		}
	},
}
