//go:build windows

package keepalive

import (
	"golang.org/x/sys/windows"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

var (
	modkernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = modkernel32.NewProc("SetThreadExecutionState")
)

// preventDisplaySleep keeps the display on for as long as the cursor is being
// moved. Synthetic cursor warps do not always reset the Windows idle timer.
func preventDisplaySleep() error {
	r, _, err := procSetThreadExecutionState.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired))
	if r == 0 {
		return err
	}
	return nil
}

func allowDisplaySleep() error {
	r, _, err := procSetThreadExecutionState.Call(uintptr(esContinuous))
	if r == 0 {
		return err
	}
	return nil
}
