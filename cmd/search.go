package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/inline"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/provider"
	"github.com/screenroom/screenroom/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("start", "s", 0, "Index of the first result of the page")
	searchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	searchCmd.Flags().Bool("schema", false, "Print the JSON schema of the output instead")
}

// promptTerm asks for a search term, suggesting remembered ones.
func promptTerm() string {
	input := survey.Input{
		Message: "Search:",
		Suggest: query.SuggestMany,
	}

	var term string
	handleErr(survey.AskOne(&input, &term, survey.WithValidator(survey.Required)))
	return strings.TrimSpace(term)
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Print one page of search results",
	Args:  cobra.ArbitraryArgs,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(inline.Schema()))
			return
		}

		term := strings.Join(args, " ")
		if term == "" {
			term = promptTerm()
		}

		if viper.GetBool(key.SearchRememberQueries) {
			if err := query.Remember(term, 1); err != nil {
				log.Warn(err)
			}
		}

		src, err := provider.Default()
		handleErr(err)

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:    os.Stdout,
			Source: src,
			Query:  term,
			Params: catalog.Params{Start: lo.Must(cmd.Flags().GetInt("start"))},
			Json:   lo.Must(cmd.Flags().GetBool("json")),
		}))
	},
}
