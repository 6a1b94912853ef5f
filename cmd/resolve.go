package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/open"
	"github.com/screenroom/screenroom/provider"
	"github.com/screenroom/screenroom/resolver"
	"github.com/screenroom/screenroom/room"
	"github.com/screenroom/screenroom/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolP("json", "j", false, "Print the whole item as JSON")
	resolveCmd.Flags().BoolP("open", "o", false, "Open the stream once resolved")
	resolveCmd.Flags().StringP("with", "w", "", "Application used by --open")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Print the stream of an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := provider.Default()
		handleErr(err)

		item, err := resolver.New(src, room.ResolverOptions()...).Resolve(cmd.Context(), args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(item))
		} else {
			fmt.Println(style.Faint(item.String()))
			fmt.Println(item.URI)
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.URL(item.URI, lo.Must(cmd.Flags().GetString("with"))))
		}
	},
}
