// Package open hands stream URLs to the desktop.
package open

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/screenroom/screenroom/constant"
)

// ErrUnsupportedOS is returned where no desktop handler is known.
var ErrUnsupportedOS = fmt.Errorf("opening links is not supported on %s", runtime.GOOS)

// URL opens link with the default handler, or with app when it is set.
// It returns once the handler has been launched.
func URL(link, app string) error {
	if err := validate(link); err != nil {
		return err
	}

	cmd, ok := command(link, app)
	if !ok {
		return ErrUnsupportedOS
	}

	return cmd.Start()
}

func validate(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: not an http link", link)
	}

	if u.Host == "" {
		return errors.New("link has no host")
	}

	return nil
}

func command(link, app string) (*exec.Cmd, bool) {
	if app != "" {
		return commandWith(link, app)
	}

	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", link), true
	case constant.Darwin:
		return exec.Command("open", link), true
	case constant.Linux:
		return exec.Command("xdg-open", link), true
	case constant.Android:
		return exec.Command("termux-open-url", link), true
	default:
		return nil, false
	}
}

func commandWith(link, app string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		// start treats & as a command separator
		escaped := strings.ReplaceAll(link, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), true
	case constant.Darwin:
		return exec.Command("open", "-a", app, link), true
	case constant.Linux, constant.Android:
		return exec.Command(app, link), true
	default:
		return nil, false
	}
}
