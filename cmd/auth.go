package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/screenroom/screenroom/auth"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().String("cookie", "", "Cookie sent with builtin source requests")
	authCmd.Flags().String("client-id", "", "Client identity sent with builtin source requests")
	authCmd.Flags().Bool("clear", false, "Remove the stored credentials")

	authCmd.MarkFlagsMutuallyExclusive("clear", "cookie")
	authCmd.MarkFlagsMutuallyExclusive("clear", "client-id")
}

// ask prompts for a credential unless it came from a flag. An empty answer
// keeps the stored value.
func ask(cmd *cobra.Command, flag, message string) string {
	if value := lo.Must(cmd.Flags().GetString(flag)); value != "" {
		return value
	}

	input := survey.Input{
		Message: message,
		Help:    "Leave empty to keep the current value",
	}

	var response string
	handleErr(survey.AskOne(&input, &response))
	return response
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store the builtin source credentials in the system keyring",
	Long: `Store the cookie and client identity sent with builtin source requests.
Values set through the configuration or the environment take precedence.`,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			confirm := survey.Confirm{
				Message: "Remove the stored credentials?",
				Default: false,
			}

			var response bool
			handleErr(survey.AskOne(&confirm, &response))
			if !response {
				return
			}

			handleErr(auth.Delete())
			log.Info("credentials removed")
			fmt.Printf("%s credentials removed\n", icon.Get(icon.Success))
			return
		}

		current := auth.Load()
		if !current.Empty() {
			fmt.Println("Credentials are already stored. Answers replace them.")
		}

		if cookie := ask(cmd, "cookie", "Cookie:"); cookie != "" {
			handleErr(auth.SetCookie(cookie))
		}

		if id := ask(cmd, "client-id", "Client id:"); id != "" {
			handleErr(auth.SetClientID(id))
		}

		log.Info("credentials stored")
		fmt.Printf("%s credentials stored\n", icon.Get(icon.Success))
	},
}
