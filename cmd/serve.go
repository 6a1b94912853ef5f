package cmd

import (
	"github.com/samber/lo"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/room"
	"github.com/screenroom/screenroom/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServerAddress, serveCmd.Flags().Lookup("address")))

	serveCmd.Flags().Bool("silent", false, "Run the session without local output")
	serveCmd.Flags().Bool("autostart", false, "Play the default item once the server is up")
	lo.Must0(viper.BindPFlag(key.PlaybackAutostart, serveCmd.Flags().Lookup("autostart")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session over HTTP",
	Long: `Serve the session over HTTP, with cleartext HTTP/2 support.

  GET  /watch?v=<id>      redirect to the stream of an item
  POST /commands/<name>   run a transport command, X-User-Id names the caller
  GET  /session           current session snapshot
  GET  /catalog?q=&start= search the source`,
	Run: func(cmd *cobra.Command, args []string) {
		options := room.Options{}
		if lo.Must(cmd.Flags().GetBool("silent")) {
			options.Renderer = player.Silent{}
		} else {
			CheckDependencies()
		}

		r, err := room.New(options)
		handleErr(err)
		defer r.Close()

		ctx := cmd.Context()
		if err := r.Controller.Start(ctx); err != nil {
			log.Warnf("autostart: %s", err)
		}

		srv := server.New(server.Deps{
			Resolver: r.Resolver,
			Gate:     r.Gate,
			Session:  r.Controller,
			Catalog:  r.Pager,
		})

		if err := srv.ListenAndServe(ctx, viper.GetString(key.ServerAddress)); err != nil {
			r.Close()
			handleErr(err)
		}
	},
}
