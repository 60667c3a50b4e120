//go:build linux

package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const detachSupported = true

// readyTimeout bounds the wait for the background process to take the clipboard.
const readyTimeout = 5 * time.Second

// detach starts exe with args in its own session, hands it text on stdin and waits until it
// reports on ReadyFD. stdout and stderr point at /dev/null so a shell pipeline around the
// parent never waits for the child.
func detach(exe string, args []string, text string) (int, error) {
	in, inW, err := os.Pipe()
	if err != nil {
		return 0, err
	}
	defer inW.Close()

	readyR, readyW, err := os.Pipe()
	if err != nil {
		in.Close()
		return 0, err
	}
	defer readyR.Close()

	cmd := exec.Command(exe, args...)
	cmd.Stdin = in
	cmd.Stdout = nil
	cmd.Stderr = nil
	// ExtraFiles[0] becomes descriptor 3 in the child.
	cmd.ExtraFiles = []*os.File{readyW}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	err = cmd.Start()
	in.Close()
	readyW.Close()
	if err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid

	if _, err := inW.WriteString(text); err != nil {
		cmd.Process.Kill()
		return 0, fmt.Errorf("failed to hand over text: %w", err)
	}
	if err := inW.Close(); err != nil {
		cmd.Process.Kill()
		return 0, err
	}

	if err := awaitReady(readyR, readyTimeout); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return 0, err
	}

	return pid, cmd.Process.Release()
}

// awaitReady reads the report of the background process until it closes its end.
func awaitReady(r *os.File, timeout time.Duration) error {
	if err := r.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	msg, err := io.ReadAll(r)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("no answer within %s", timeout)
	}
	if err != nil {
		return err
	}
	return readyError(string(msg))
}
