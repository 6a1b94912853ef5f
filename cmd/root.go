// Package cmd implements the command-line interface of screenroom.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/provider"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/tui"
	"github.com/screenroom/screenroom/util"
	"github.com/screenroom/screenroom/version"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindSetting adds a persistent flag that overrides the config key of the
// same meaning, completed from complete.
func bindSetting(name, short, usage, configKey string, complete func() []string) {
	flags := rootCmd.PersistentFlags()
	flags.StringP(name, short, "", usage)

	lo.Must0(viper.BindPFlag(configKey, flags.Lookup(name)))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return complete(), cobra.ShellCompDirectiveNoFileComp
	}))
}

func sourceNames() []string {
	return lo.Map(append(provider.Builtins(), provider.Customs()...), func(p *provider.Provider, _ int) string {
		return p.Name
	})
}

func init() {
	bindSetting("icons", "I", "Icon variant", key.IconsVariant, icon.AvailableVariants)
	bindSetting("source", "S", "Content source to search and play from", key.SourceDefault, sourceNames)
	bindSetting("player", "P", "Media player backend", key.PlayerBackend, player.AvailableBackends)

	rootCmd.PersistentFlags().StringP("user", "u", os.Getenv("USER"), "Name shown for your commands in the logs")
	rootCmd.Flags().StringP("query", "q", "", "Search for this as soon as the interface opens")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version")

	showHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		showHelp(cmd, args)
		version.Notify()
	})

	// leftovers of the previous run
	go func() { _ = util.Delete(where.Temp()) }()
}

const tagline = "Shared video screens with a transport you can trust"

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: tagline,
	Long:  constant.AsciiArtLogo + "\n" + style.New().Italic(true).Foreground(color.HiRed).Render("    - "+tagline),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		handleErr(tui.Run(&tui.Options{
			Query: lo.Must(cmd.Flags().GetString("query")),
			User:  lo.Must(cmd.Flags().GetString("user")),
		}))
	},
}

// Execute runs the command tree. Commands see a context cancelled on
// interrupt.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// handleErr reports err and exits. Commands call it where a failure ends
// the run.
func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.TrimSpace(err.Error()))
	os.Exit(1)
}
