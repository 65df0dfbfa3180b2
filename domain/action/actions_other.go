//go:build !windows && !linux

package action

// DefaultDriver is not available on this platform.
func DefaultDriver() (KeyDriver, error) { return nil, ErrUnsupported }

// ForegroundWindowTitle is not available on this platform.
func ForegroundWindowTitle() (string, error) { return "", ErrUnsupported }
