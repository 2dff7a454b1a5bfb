package ticket

import (
	"io"

	"github.com/juju/errors"
	qrcode "github.com/skip2/go-qrcode"
)

type Printer interface {
	Print(*Ticket) error
}

// ConsolePrinter imitates the thermal printer: ticket body followed by
// a QR stub carrying the ticket id for gate validation.
type ConsolePrinter struct {
	W  io.Writer
	QR bool
}

func (p *ConsolePrinter) Print(t *Ticket) error {
	out := t.Render() + "\n"
	if p.QR {
		q, err := qrcode.New(t.ID.String(), qrcode.Medium)
		if err != nil {
			return errors.Annotatef(err, "ticket qr id=%s", t.ID)
		}
		out += q.ToSmallString(false)
	}
	if _, err := io.WriteString(p.W, out); err != nil {
		return errors.Annotate(err, "ticket print")
	}
	return nil
}

// NullPrinter discards tickets, for tests and headless runs.
type NullPrinter struct{}

func (NullPrinter) Print(*Ticket) error { return nil }
