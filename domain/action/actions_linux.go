//go:build linux

package action

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

// X11 keysyms for the supported keys.
const (
	xkSpace = 0x0020
	xkUp    = 0xff52
	xkDown  = 0xff54
)

// x11Driver injects keys through the XTEST extension.
type x11Driver struct {
	conn  *xgb.Conn
	root  xproto.Window
	codes map[xproto.Keysym]xproto.Keycode
}

// DefaultDriver connects to $DISPLAY and returns an XTEST key driver.
func DefaultDriver() (KeyDriver, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("action: connect X server: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("action: XTEST extension: %w", err)
	}
	setup := xproto.Setup(conn)
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	mapping, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("action: keyboard mapping: %w", err)
	}
	codes := make(map[xproto.Keysym]xproto.Keycode)
	per := int(mapping.KeysymsPerKeycode)
	for i := 0; per > 0 && i < int(count); i++ {
		for j := 0; j < per; j++ {
			sym := mapping.Keysyms[i*per+j]
			if _, seen := codes[sym]; !seen && sym != 0 {
				codes[sym] = setup.MinKeycode + xproto.Keycode(i)
			}
		}
	}
	return &x11Driver{conn: conn, root: setup.DefaultScreen(conn).Root, codes: codes}, nil
}

func (d *x11Driver) KeyDown(k Key) error { return d.fake(xproto.KeyPress, k) }
func (d *x11Driver) KeyUp(k Key) error   { return d.fake(xproto.KeyRelease, k) }

// Close releases the X connection.
func (d *x11Driver) Close() error {
	d.conn.Close()
	return nil
}

func (d *x11Driver) fake(event byte, k Key) error {
	sym, err := keysym(k)
	if err != nil {
		return err
	}
	code, ok := d.codes[sym]
	if !ok {
		return fmt.Errorf("action: no keycode for %q", k)
	}
	return xtest.FakeInputChecked(d.conn, event, byte(code), 0, d.root, 0, 0, 0).Check()
}

func keysym(k Key) (xproto.Keysym, error) {
	switch k {
	case KeySpace:
		return xkSpace, nil
	case KeyDown:
		return xkDown, nil
	case KeyUp:
		return xkUp, nil
	}
	s := string(k)
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return xproto.Keysym(s[0]), nil // Latin-1 keysyms equal ASCII
	}
	return 0, fmt.Errorf("action: no keysym for %q", k)
}

var titleConn struct {
	sync.Mutex
	conn *xgb.Conn
}

// ForegroundWindowTitle returns the title of the EWMH active window.
func ForegroundWindowTitle() (string, error) {
	titleConn.Lock()
	defer titleConn.Unlock()
	if titleConn.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return "", fmt.Errorf("action: connect X server: %w", err)
		}
		titleConn.conn = conn
	}
	conn := titleConn.conn
	root := xproto.Setup(conn).DefaultScreen(conn).Root

	active, err := property(conn, root, "_NET_ACTIVE_WINDOW", xproto.AtomWindow)
	if err != nil {
		return "", err
	}
	if len(active.Value) < 4 {
		return "", errors.New("no foreground window")
	}
	win := xproto.Window(xgb.Get32(active.Value))
	if win == 0 {
		return "", errors.New("no foreground window")
	}
	utf8, err := atom(conn, "UTF8_STRING")
	if err != nil {
		return "", err
	}
	name, err := property(conn, win, "_NET_WM_NAME", utf8)
	if err == nil && len(name.Value) > 0 {
		return strings.TrimSpace(string(name.Value)), nil
	}
	name, err = property(conn, win, "WM_NAME", xproto.AtomString)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(name.Value)), nil
}

func atom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("action: intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

func property(conn *xgb.Conn, win xproto.Window, name string, typ xproto.Atom) (*xproto.GetPropertyReply, error) {
	a, err := atom(conn, name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(conn, false, win, a, typ, 0, 1024).Reply()
	if err != nil {
		return nil, fmt.Errorf("action: get %s: %w", name, err)
	}
	return reply, nil
}
