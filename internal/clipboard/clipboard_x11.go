//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Backend owns the CLIPBOARD selection through a hidden window and
// serves image/png to requestors from its event loop.
type x11Backend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu  sync.RWMutex
	png []byte
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func platformBackend() (backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	as, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	b := &x11Backend{conn: conn, window: window, atoms: as}
	go b.serve()
	return b, nil
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "image/png", "SKETCHPAD_CLIPBOARD"}
	ids := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		ids[i] = reply.Atom
	}
	return atoms{clipboard: ids[0], targets: ids[1], png: ids[2], property: ids[3]}, nil
}

func (b *x11Backend) write(png []byte) error {
	b.mu.Lock()
	b.png = append([]byte(nil), png...)
	b.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (b *x11Backend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.mu.Lock()
			b.png = nil
			b.mu.Unlock()
		}
	}
}

func (b *x11Backend) answer(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}
	b.mu.RLock()
	data := b.png
	b.mu.RUnlock()

	switch {
	case e.Target == b.atoms.targets:
		list := []xproto.Atom{b.atoms.targets}
		if len(data) > 0 {
			list = append(list, b.atoms.png)
		}
		buf := make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, prop, xproto.AtomAtom, 32, uint32(len(list)), buf)
	case e.Target == b.atoms.png && len(data) > 0:
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, prop, b.atoms.png, 8, uint32(len(data)), data)
	default:
		prop = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(b.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// read converts the selection on a private connection so that it does not
// race with serve for events.
func (b *x11Backend) read() ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, b.atoms.clipboard, b.atoms.png, b.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			return nil, ErrNoImage
		}
		sel, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if sel.Property == xproto.AtomNone {
			return nil, ErrNoImage
		}
		reply, perr := xproto.GetProperty(conn, true, window, sel.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return reply.Value, nil
	}
}
