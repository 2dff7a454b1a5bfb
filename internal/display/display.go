// Package display models the kiosk status surface: a passive text area
// that renders the last transaction report in full. "Last report wins",
// there is no history.
package display

import (
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/alive/v2"
)

type Devicer interface {
	Clear()
	Write(b []byte)
}

type TextDisplay struct {
	alive *alive.Alive
	mu    sync.Mutex
	dev   Devicer
	tr    atomic.Value
	state string
	upd   chan<- string
}

type TextDisplayConfig struct {
	// Codepage translates reports for restricted hardware character
	// sets. Empty means raw UTF-8, which the stock reports require.
	Codepage string
}

func NewTextDisplay(opt *TextDisplayConfig) (*TextDisplay, error) {
	if opt == nil {
		panic("code error NewTextDisplay opt=nil")
	}
	d := &TextDisplay{
		alive: alive.NewAlive(),
	}
	if opt.Codepage != "" {
		if err := d.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return d, nil
}

func (d *TextDisplay) SetCodepage(cp string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	d.tr.Store(tr)
	return nil
}

func (d *TextDisplay) SetDevice(dev Devicer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dev = dev
}

func (d *TextDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = ""
	d.flush()
}

// SetReport replaces the whole surface content.
func (d *TextDisplay) SetReport(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = text
	d.flush()
}

// Message shows text until wait returns, then restores previous content.
func (d *TextDisplay) Message(text string, wait func()) {
	d.mu.Lock()
	prev := d.state
	d.state = text
	d.flush()
	d.mu.Unlock()

	wait()

	d.mu.Lock()
	d.state = prev
	d.flush()
	d.mu.Unlock()
}

func (d *TextDisplay) State() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *TextDisplay) SetUpdateChan(ch chan<- string) {
	d.upd = ch
}

func (d *TextDisplay) Translate(s string) []byte {
	result := []byte(s)
	tr, ok := d.tr.Load().(charset.Translator)
	if ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			panic(err)
		}
		// translator reuses single internal buffer, make a copy
		result = append([]byte(nil), tb...)
	}
	return result
}

func (d *TextDisplay) flush() {
	if d.dev != nil {
		d.dev.Clear()
		d.dev.Write(d.Translate(d.state))
	}
	if d.upd != nil {
		d.upd <- d.state
	}
}
