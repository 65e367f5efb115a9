//go:build !windows && !linux && !darwin

package keepalive

// Display sleep is left to the OS; cursor movement alone resets the idle timer.
func preventDisplaySleep() error {
	return nil
}

func allowDisplaySleep() error {
	return nil
}
