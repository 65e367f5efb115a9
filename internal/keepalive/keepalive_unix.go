//go:build linux || darwin

package keepalive

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"sync"
	"syscall"

	"github.com/stigoleg/keep-moving/internal/util"
)

var (
	inhibitorMu sync.Mutex
	inhibitor   *exec.Cmd
)

// inhibitorCommand returns the idle inhibitor for this OS. Synthetic cursor
// warps do not reset the idle timer on every compositor, so an inhibitor
// runs alongside the tick loop.
func inhibitorCommand() []string {
	if runtime.GOOS == "darwin" {
		return []string{"caffeinate", "-d", "-i"}
	}
	return []string{"systemd-inhibit",
		"--what=idle:sleep",
		"--who=keep-moving",
		"--why=Cursor simulation running",
		"--mode=block",
		"sh", "-c", "while true; do sleep 1; done"}
}

func preventDisplaySleep() error {
	inhibitorMu.Lock()
	defer inhibitorMu.Unlock()

	if inhibitor != nil {
		return nil
	}

	args := inhibitorCommand()
	if !util.HasCommand(args[0]) {
		return fmt.Errorf("%s command not found", args[0])
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", args[0], err)
	}

	inhibitor = cmd
	log.Printf("keeper: %s started (pid %d)", args[0], cmd.Process.Pid)
	return nil
}

func allowDisplaySleep() error {
	inhibitorMu.Lock()
	defer inhibitorMu.Unlock()

	if inhibitor == nil {
		return nil
	}
	cmd := inhibitor
	inhibitor = nil

	// The inhibitor leads its own process group; kill the group so the
	// shell it spawned goes with it.
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("failed to stop inhibitor (pid %d): %w", cmd.Process.Pid, err)
	}
	_ = cmd.Wait()
	return nil
}
