package transaction

import (
	"fmt"
	"strings"

	"github.com/citymetro/kiosk/currency"
	"github.com/citymetro/kiosk/internal/fare"
	"github.com/citymetro/kiosk/internal/ticket"
)

// Status report text contract. Golden tests pin these blocks; changing
// any string here breaks compatibility with recorded output.
const (
	ruleHeavy = "═══════════════════════════════"
	ruleThin  = "───────────────────────────────"

	hdrSelected     = "       TICKET SELECTED"
	hdrInserted     = "       MONEY INSERTED"
	hdrError        = "          ⚠ ERROR"
	hdrInsufficient = "    ⚠ INSUFFICIENT FUNDS"
	hdrPrinted      = "     🎫 TICKET PRINTED! 🎫"
	hdrCancelled    = "     TRANSACTION CANCELLED"
)

func header(b *strings.Builder, title string) {
	b.WriteString(ruleHeavy)
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(ruleHeavy)
	b.WriteString("\n\n")
}

func reportSelected(d *fare.Destination, balance currency.Amount) string {
	b := &strings.Builder{}
	header(b, hdrSelected)
	fmt.Fprintf(b, "Destination: %s\n", d.Name)
	fmt.Fprintf(b, "Ticket Price: $%s\n\n", d.Price.Format2D())
	b.WriteString(ruleThin)
	b.WriteString("\n")
	fmt.Fprintf(b, "Current Balance: $%s\n", balance.Format2D())
	if balance < d.Price {
		fmt.Fprintf(b, "Amount Needed: $%s\n", (d.Price - balance).Format2D())
		b.WriteString("\n⚠ Please insert money to continue.")
	} else {
		b.WriteString("\n✓ Sufficient funds! Press PRINT TICKET.")
	}
	return b.String()
}

func reportInserted(inserted, balance currency.Amount, selected *fare.Destination) string {
	b := &strings.Builder{}
	header(b, hdrInserted)
	fmt.Fprintf(b, "Inserted: $%s\n", inserted.Format2D())
	fmt.Fprintf(b, "Current Balance: $%s\n\n", balance.Format2D())
	if selected != nil {
		b.WriteString(ruleThin)
		b.WriteString("\n")
		fmt.Fprintf(b, "Selected: %s\n", selected.Name)
		fmt.Fprintf(b, "Price: $%s\n\n", selected.Price.Format2D())
		if balance >= selected.Price {
			b.WriteString("✓ Sufficient funds!\n")
			b.WriteString("Press PRINT TICKET to continue.")
		} else {
			fmt.Fprintf(b, "Still needed: $%s", (selected.Price - balance).Format2D())
		}
	} else {
		b.WriteString("Please select a destination.")
	}
	return b.String()
}

func reportErrNoSelection() string {
	b := &strings.Builder{}
	header(b, hdrError)
	b.WriteString("No destination selected!\n\n")
	b.WriteString("Please select a destination first.")
	return b.String()
}

func reportErrInsufficient(e InsufficientFundsError) string {
	b := &strings.Builder{}
	header(b, hdrInsufficient)
	fmt.Fprintf(b, "Ticket Price: $%s\n", e.Fare.Format2D())
	fmt.Fprintf(b, "Your Balance: $%s\n", e.Balance.Format2D())
	b.WriteString(ruleThin)
	b.WriteString("\n")
	fmt.Fprintf(b, "Short by: $%s\n\n", e.Shortfall().Format2D())
	b.WriteString("Please insert more money.")
	return b.String()
}

func reportPrinted(t *ticket.Ticket) string {
	b := &strings.Builder{}
	header(b, hdrPrinted)
	b.WriteString("╔═════════════════════════════╗\n")
	b.WriteString("║     CITY METRO TICKET       ║\n")
	b.WriteString("╠═════════════════════════════╣\n")
	fmt.Fprintf(b, "║ TO: %-22s║\n", t.Destination)
	fmt.Fprintf(b, "║ FARE: $%-19s║\n", t.Fare.Format2D())
	fmt.Fprintf(b, "║ PAID: $%-19s║\n", t.Paid.Format2D())
	b.WriteString("╚═════════════════════════════╝\n\n")
	if t.Change > 0 {
		fmt.Fprintf(b, "💰 CHANGE RETURNED: $%s\n\n", t.Change.Format2D())
	}
	b.WriteString("Thank you for traveling with us!\n")
	b.WriteString("Have a safe journey! 🚇")
	return b.String()
}

func reportCancelled(refund currency.Amount) string {
	b := &strings.Builder{}
	header(b, hdrCancelled)
	if refund > 0 {
		fmt.Fprintf(b, "💰 Returning: $%s\n\n", refund.Format2D())
	}
	b.WriteString("Transaction has been reset.\n\n")
	b.WriteString(ruleThin)
	b.WriteString("\n")
	b.WriteString("Welcome to City Metro!\n")
	b.WriteString("Please select your destination.")
	return b.String()
}
