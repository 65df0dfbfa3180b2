//go:build windows

package action

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	mapvkVKToVSC         = 0
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent          = user32.NewProc("keybd_event")
	procMapVirtualKeyW      = user32.NewProc("MapVirtualKeyW")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
)

// win32Driver injects keys with keybd_event.
type win32Driver struct{}

// DefaultDriver returns the platform key driver.
func DefaultDriver() (KeyDriver, error) {
	if err := procKeybdEvent.Find(); err != nil {
		return nil, fmt.Errorf("action: keybd_event: %w", err)
	}
	return win32Driver{}, nil
}

func (win32Driver) KeyDown(k Key) error { return sendKey(k, 0) }
func (win32Driver) KeyUp(k Key) error   { return sendKey(k, keyeventfKeyUp) }

func sendKey(k Key, flags uintptr) error {
	vk, extended, err := virtualKey(k)
	if err != nil {
		return err
	}
	if extended {
		flags |= keyeventfExtendedKey
	}
	scan, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVKToVSC)
	_, _, _ = procKeybdEvent.Call(uintptr(vk), scan, flags, 0)
	return nil
}

// virtualKey maps a Key to a Windows virtual-key code. Arrow keys live on the
// extended keypad.
func virtualKey(k Key) (byte, bool, error) {
	switch k {
	case KeySpace:
		return 0x20, false, nil // VK_SPACE
	case KeyDown:
		return 0x28, true, nil // VK_DOWN
	case KeyUp:
		return 0x26, true, nil // VK_UP
	}
	s := strings.ToUpper(string(k))
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return s[0], false, nil // 'A'..'Z' match VK codes
	}
	return 0, false, fmt.Errorf("action: no virtual key for %q", k)
}

// ForegroundWindowTitle returns the title of the current foreground window.
func ForegroundWindowTitle() (string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", errors.New("no foreground window")
	}
	const maxChars = 256
	buf := make([]uint16, maxChars)
	r, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return "", nil
	}
	end := int(r)
	for i, v := range buf[:end] {
		if v == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(utf16.Decode(buf[:end]))), nil
}
