package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/color"
	"github.com/screenroom/screenroom/display"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/icon"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/room"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [id]",
	Short: "Play without the interface, reading commands from standard input",
	Long: `Play an item, or the configured default item, and print what the session shows.

Every line read from standard input is a command:
  play, stop, pause, rewind, fast-forward, volume-up, volume-down,
  rolloff-up, rolloff-down, toggle-controls
  play <id> - play another item
  quit - stop and exit`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		r, err := room.New(room.Options{Hooks: display.NewConsole(os.Stdout)})
		handleErr(err)

		user := session.NewUser(lo.Must(cmd.Flags().GetString("user")))
		ctx := cmd.Context()

		if len(args) == 1 {
			err = r.Gate.PlayItem(ctx, user, args[0])
		} else {
			err = r.Gate.Dispatch(ctx, user, gate.Play)
		}

		if err != nil {
			r.Close()
			handleErr(err)
		}

		err = readCommands(ctx, os.Stdin, r, user)
		r.Close()
		handleErr(err)
	},
}

// readCommands runs commands from in until it is exhausted, "quit" is read
// or ctx is done.
func readCommands(ctx context.Context, in io.Reader, r *room.Room, user session.User) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}

			if strings.TrimSpace(line) == "quit" {
				return nil
			}

			if err := runLine(ctx, r, user, line); err != nil {
				log.WithFields(log.Fields{"line": line}).Warn(err)
				fmt.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), err)
			}
		}
	}
}

func runLine(ctx context.Context, r *room.Room, user session.User, line string) error {
	name, id, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "" {
		return nil
	}

	command, err := gate.ParseCommand(name)
	if err != nil {
		return err
	}

	if id = strings.TrimSpace(id); id != "" {
		if command != gate.Play {
			return fmt.Errorf("%s takes no argument", command)
		}
		err = r.Gate.PlayItem(ctx, user, id)
	} else {
		err = r.Gate.Dispatch(ctx, user, command)
	}

	if errors.Is(err, gate.ErrBusy) {
		return nil
	}
	return err
}
