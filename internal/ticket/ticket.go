// Package ticket is the issued ticket record and its physical print
// rendition. The transaction engine emits one Ticket per successful
// sale; a Printer turns it into paper (or console) output.
package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/citymetro/kiosk/currency"
)

type Ticket struct {
	ID          uuid.UUID
	Destination string
	Fare        currency.Amount
	Paid        currency.Amount
	Change      currency.Amount
	IssuedAt    time.Time
}

func New(destination string, fare, paid currency.Amount) *Ticket {
	if paid < fare {
		panic("code error ticket.New paid < fare")
	}
	return &Ticket{
		ID:          uuid.New(),
		Destination: destination,
		Fare:        fare,
		Paid:        paid,
		Change:      paid - fare,
		IssuedAt:    time.Now(),
	}
}

func (t *Ticket) String() string {
	return fmt.Sprintf("ticket id=%s to=%s fare=%s paid=%s change=%s",
		t.ID, t.Destination, t.Fare.Format2D(), t.Paid.Format2D(), t.Change.Format2D())
}

// Render is the paper form of the ticket.
func (t *Ticket) Render() string {
	b := strings.Builder{}
	b.WriteString("╔═════════════════════════════╗\n")
	b.WriteString("║     CITY METRO TICKET       ║\n")
	b.WriteString("╠═════════════════════════════╣\n")
	fmt.Fprintf(&b, "║ TO: %-23s ║\n", t.Destination)
	fmt.Fprintf(&b, "║ FARE: $%-20s ║\n", t.Fare.Format2D())
	fmt.Fprintf(&b, "║ PAID: $%-20s ║\n", t.Paid.Format2D())
	fmt.Fprintf(&b, "║ %-27s ║\n", t.IssuedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "║ %-27s ║\n", shortID(t.ID))
	b.WriteString("╚═════════════════════════════╝")
	return b.String()
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return strings.ToUpper(s[:8] + s[9:13])
}
