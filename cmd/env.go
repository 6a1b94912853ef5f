package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/config"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are not set")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envNames lists every variable the application reads, sorted.
func envNames() []string {
	names := lo.Map(config.EnvExposed, func(name string, _ int) string {
		return config.Default[name].Env()
	})
	names = append(names, where.EnvConfigPath, where.EnvCachePath)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables screenroom reads",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			out       = cmd.OutOrStdout()
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			name      = style.New().Bold(true).Foreground(color.Purple).Render
		)

		for _, env := range envNames() {
			value, set := os.LookupEnv(env)
			if set && unsetOnly || !set && setOnly {
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if set {
				shown = style.Fg(color.Green)(value)
			}
			fmt.Fprintf(out, "%s=%s\n", name(env), shown)
		}
	},
}
