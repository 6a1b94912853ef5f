package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/internal/scraper"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/provider"
	"github.com/screenroom/screenroom/style"
	"github.com/screenroom/screenroom/util"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the builtin catalog source and custom Lua sources",
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd, sourcesRemoveCmd, sourcesInstallCmd, sourcesGenCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print names only")
	sourcesListCmd.Flags().BoolP("custom", "c", false, "List Lua sources only")
	sourcesListCmd.Flags().BoolP("builtin", "b", false, "List builtin sources only")
	sourcesListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")

	sourcesRemoveCmd.Flags().StringArrayP("name", "n", nil, "Lua source to remove")
	lo.Must0(sourcesRemoveCmd.RegisterFlagCompletionFunc("name", completeCustomSources))

	sourcesGenCmd.Flags().StringP("name", "n", "", "Display name of the new source")
	sourcesGenCmd.Flags().StringP("url", "u", "", "Base URL of the site the source reads from")
	lo.Must0(sourcesGenCmd.MarkFlagRequired("name"))
	lo.Must0(sourcesGenCmd.MarkFlagRequired("url"))
}

func completeCustomSources(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	customs, err := provider.CustomProviders()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(customs, func(p *provider.Provider, _ int) string {
		return p.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

func customSourcePath(name string) string {
	return filepath.Join(where.Sources(), name+scraper.Extension)
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every source that can be selected with --source",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			out     = cmd.OutOrStdout()
			raw     = lo.Must(cmd.Flags().GetBool("raw"))
			builtin = lo.Must(cmd.Flags().GetBool("builtin"))
			custom  = lo.Must(cmd.Flags().GetBool("custom"))
			header  = style.New().Foreground(color.HiBlue).Bold(true).Render
		)

		section := func(title string, providers []*provider.Provider) {
			if !raw {
				fmt.Fprintln(out, header(title))
			}
			for _, p := range providers {
				if p.UsesHeadless && !raw {
					fmt.Fprintln(out, p.Name, style.Faint("(headless)"))
				} else {
					fmt.Fprintln(out, p.Name)
				}
			}
		}

		if !custom {
			section("Builtin:", provider.Builtins())
		}
		if !custom && !builtin && !raw {
			fmt.Fprintln(out)
		}
		if !builtin {
			section("Custom:", provider.Customs())
		}
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete custom Lua sources",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			err := filesystem.API().Remove(customSourcePath(name))
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("no custom source named %q", name)
			}
			handleErr(err)

			fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

// sourcesInstallCmd downloads Lua sources. A script whose contents did not
// change is left alone.
var sourcesInstallCmd = &cobra.Command{
	Use:   "install <url>...",
	Short: "Download custom Lua sources into the sources directory",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, url := range args {
			target, changed, err := scraper.Install(cmd.Context(), url, where.Sources())
			handleErr(err)

			log.WithFields(log.Fields{"url": url, "target": target, "changed": changed}).Info("source installed")

			status := "is up to date"
			if changed {
				status = "installed"
			}
			name := style.Fg(color.Yellow)(util.FileStem(filepath.Base(target)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", icon.Get(icon.Success), name, status)
		}
	},
}

type sourceStub struct {
	Name          string
	URL           string
	Author        string
	SearchItemsFn string
	ItemInfoFn    string
}

func stubAuthor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "Anonymous"
}

var sourcesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Write a new Lua source with search and info stubbed out",
	Run: func(cmd *cobra.Command, args []string) {
		stub := sourceStub{
			Name:          lo.Must(cmd.Flags().GetString("name")),
			URL:           lo.Must(cmd.Flags().GetString("url")),
			Author:        stubAuthor(),
			SearchItemsFn: constant.SearchItemsFn,
			ItemInfoFn:    constant.ItemInfoFn,
		}

		tmpl, err := template.New("source").Funcs(template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}).Parse(constant.SourceTemplate)
		handleErr(err)

		target := customSourcePath(util.SanitizeFilename(stub.Name))
		f, err := filesystem.API().Create(target)
		handleErr(err)
		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, stub))
		fmt.Fprintln(cmd.OutOrStdout(), target)
	},
}
