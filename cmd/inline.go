package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/inline"
	"github.com/screenroom/screenroom/provider"
	"github.com/screenroom/screenroom/query"
	"github.com/screenroom/screenroom/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query")
	inlineCmd.Flags().StringP("pick", "p", "", "Which items of the page to print")
	inlineCmd.Flags().IntP("start", "s", 0, "Index of the first result of the page")
	inlineCmd.Flags().IntP("page-size", "n", 0, "Items per page. Uses catalog.page_size when unset")
	inlineCmd.Flags().BoolP("resolve", "r", false, "Look up the stream of every picked item")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search and resolve without the interface, for scripts",
	Long: `Search the selected source and print one page of results.

Item selectors:
  first - first item of the page
  last - last item of the page
  all - every item of the page
  [number] - select item by index (starting from 0)
  [from]-[to] - select items by range
  @[substring]@ - select items by title substring

Without a selector every item of the page is printed.`,
	Example: `  screenroom inline -q "lofi radio" -p first -r
  screenroom inline -q "lofi radio" -s 18 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := provider.Default()
		handleErr(err)

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(f.Close)
			writer = f
		}

		picker := mo.None[inline.Picker]()
		if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
			fn, err := inline.ParsePicker(pick)
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:    writer,
			Source: src,
			Query:  lo.Must(cmd.Flags().GetString("query")),
			Params: catalog.Params{
				Start:    lo.Must(cmd.Flags().GetInt("start")),
				PageSize: lo.Must(cmd.Flags().GetInt("page-size")),
			},
			Picker:  picker,
			Resolve: lo.Must(cmd.Flags().GetBool("resolve")),
			Json:    lo.Must(cmd.Flags().GetBool("json")),
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline JSON output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(inline.Schema()))
	},
}
