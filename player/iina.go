package player

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/source"
)

// IINA renders items with the macOS IINA player.
// IINA forwards "--mpv-" options to its embedded mpv, so the instance is
// controlled over the same IPC socket as plain mpv.
type IINA struct {
	extraArgs []string
}

func NewIINA(extraArgs ...string) *IINA {
	return &IINA{extraArgs: extraArgs}
}

func (i *IINA) Name() string {
	return BackendIINA
}

func (i *IINA) Start(ctx context.Context, item *source.Item, opts SoundOptions) (Instance, error) {
	if runtime.GOOS != constant.Darwin {
		return nil, fmt.Errorf("IINA is only supported on macOS")
	}

	target, err := sanitizeMediaTarget(item.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	socket, err := newSocketPath()
	if err != nil {
		return nil, err
	}

	args := []string{"-n", "-a", "IINA", "--args"}
	args = append(args, buildArgs(socket, item, opts, "mpv-")...)
	args = append(args, i.extraArgs...)
	args = append(args, target)

	// open returns as soon as LaunchServices hands the file over
	cmd := exec.Command("open", args...)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	instance := &mpvInstance{
		socketPath: socket,
		cmd:        cmd,
		exited:     make(chan struct{}),
		detached:   true,
	}

	go func() {
		_ = cmd.Wait()
		close(instance.exited)
	}()

	if err := instance.waitForSocket(ctx); err != nil {
		return nil, fmt.Errorf("IINA socket not ready: %w", err)
	}

	return instance, nil
}
