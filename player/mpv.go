package player

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/source"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// rolloffProperty stores the rolloff distance on the player so scripts can read it.
const rolloffProperty = "user-data/" + constant.App + "/rolloff"

// MPV renders items in a dedicated mpv process controlled over JSON-IPC.
type MPV struct {
	binary    string
	extraArgs []string
}

// NewMPV returns an mpv renderer passing extraArgs to every process.
func NewMPV(extraArgs ...string) *MPV {
	return &MPV{binary: "mpv", extraArgs: extraArgs}
}

func (m *MPV) Name() string {
	return BackendMPV
}

// Start launches mpv for item and waits until its IPC socket accepts connections.
func (m *MPV) Start(ctx context.Context, item *source.Item, opts SoundOptions) (Instance, error) {
	// Sanitize the URL to prevent flag injection from Lua scripts
	target, err := sanitizeMediaTarget(item.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	socket, err := newSocketPath()
	if err != nil {
		return nil, err
	}

	args := buildArgs(socket, item, opts, "")
	args = append(args, m.extraArgs...)
	args = append(args, target)

	cmd := exec.Command(m.binary, args...)
	return launch(ctx, cmd, socket)
}

// buildArgs returns the mpv options for item. prefix is prepended to every
// option name, for hosts that forward options to an embedded mpv.
func buildArgs(socket string, item *source.Item, opts SoundOptions, prefix string) []string {
	title := sanitizeTitle(item.Title)

	// Pass only what the session controls; respect the user's mpv.conf otherwise.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + title,
		"--title=" + title,
		"--force-window=yes",
		"--volume=" + strconv.FormatFloat(opts.Volume*100, 'f', 0, 64),
	}

	if opts.StartOffsetSeconds > 0 && !item.Live {
		args = append(args, "--start="+strconv.FormatFloat(opts.StartOffsetSeconds, 'f', 3, 64))
	}

	if header := headerFields(item.Headers); header != "" {
		args = append(args, "--http-header-fields="+header)
	}

	if prefix != "" {
		for i, arg := range args {
			args[i] = "--" + prefix + strings.TrimPrefix(arg, "--")
		}
	}

	return args
}

func headerFields(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	slices.Sort(names)

	fields := make([]string, len(names))
	for i, name := range names {
		// mpv splits the list on commas
		fields[i] = fmt.Sprintf("%s: %s", name, strings.ReplaceAll(headers[name], ",", "%2C"))
	}

	return strings.Join(fields, ",")
}

func newSocketPath() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}

	// os.TempDir for macOS, where $TMPDIR is not /tmp
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes)), nil
}

func launch(ctx context.Context, cmd *exec.Cmd, socket string) (*mpvInstance, error) {
	// Detach from parent process group to prevent cascading shell panics.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", filepath.Base(cmd.Path), err)
	}

	instance := &mpvInstance{
		socketPath: socket,
		cmd:        cmd,
		exited:     make(chan struct{}),
	}

	// Reap the process to prevent zombies
	go func() {
		_ = cmd.Wait()
		close(instance.exited)
	}()

	if err := instance.waitForSocket(ctx); err != nil {
		select {
		case <-instance.exited:
		default:
			log.Warnf("killing player: socket never became ready")
			_ = killProcess(cmd)
		}
		_ = os.Remove(socket)
		return nil, fmt.Errorf("player socket not ready: %w", err)
	}

	return instance, nil
}

// mpvInstance is one running mpv process.
type mpvInstance struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the process exits
	detached   bool          // the launcher exits before the player does
	mu         sync.Mutex    // Protects socket writes
	stopOnce   sync.Once
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *mpvInstance) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(socketWaitDelay):
		}

		if !m.detached {
			select {
			case <-m.exited:
				return fmt.Errorf("player exited before socket was ready")
			default:
			}
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *mpvInstance) Pause() error {
	return m.set("pause", true)
}

func (m *mpvInstance) Resume() error {
	return m.set("pause", false)
}

func (m *mpvInstance) SetVolume(volume float64) error {
	return m.set("volume", volume*100)
}

func (m *mpvInstance) SetRolloff(distance float64) error {
	return m.set(rolloffProperty, strconv.FormatFloat(distance, 'f', 2, 64))
}

// Stop quits mpv, killing it if it does not exit in time, and removes the socket.
func (m *mpvInstance) Stop() error {
	m.stopOnce.Do(func() {
		_, _ = m.sendCommand([]any{"quit"})

		if !m.detached {
			select {
			case <-m.exited:
			case <-time.After(quitTimeout):
				_ = killProcess(m.cmd)
			}
		}

		_ = os.Remove(m.socketPath)
	})

	return nil
}

func (m *mpvInstance) set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
// Prevents flag injection from untrusted Lua scripts.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// URLs must not look like flags
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle flattens the title onto one line for mpv.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
