package ui

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	"github.com/citymetro/kiosk/currency"
	"github.com/citymetro/kiosk/internal/input"
	"github.com/citymetro/kiosk/internal/ticket"
	"github.com/citymetro/kiosk/internal/transaction"
	"github.com/citymetro/kiosk/internal/types"
	tele_api "github.com/citymetro/kiosk/tele"
)

const defaultResetTimeout = 5 * time.Minute

func (self *UI) onBroken(ctx context.Context) State {
	if !self.broken {
		self.g.Tele.State(tele_api.State_Problem)
	}
	self.broken = true
	self.display.SetReport(self.config.Front.MsgStateBroken)
	for self.g.Alive.IsRunning() {
		e := self.wait(time.Second)
		if e.Kind == types.EventStop {
			return StateStop
		}
	}
	return StateDefault
}

func (self *UI) onFrontBegin(ctx context.Context) State {
	self.g.Tele.State(tele_api.State_Nominal)
	self.display.SetReport(self.config.Front.MsgStateIntro)
	return StateFrontSelect
}

func (self *UI) onFrontSelect(ctx context.Context) State {
	for {
		timeout := self.frontResetTimeout
		e := self.wait(timeout)
		switch e.Kind {
		case types.EventInput:
			if next := self.handleInput(ctx, e.Input); next != StateDefault {
				return next
			}

		case types.EventTime:
			if atomic_clock.Since(&self.lastActivity) >= timeout {
				return StateFrontTimeout
			}

		case types.EventStop:
			return StateStop

		default:
			self.g.Log.Fatalf("ui onFrontSelect unhandled event=%s", e.String())
		}
	}
}

// handleInput maps one key press to an engine operation.
// StateDefault means stay in FrontSelect.
func (self *UI) handleInput(ctx context.Context, ie types.InputEvent) State {
	switch {
	case ie.Key == input.KeyCancel:
		report := self.g.Vend.Cancel()
		self.display.SetReport(report)
		return StateDefault

	case ie.Key == input.KeyPrint:
		return self.onKeyPrint(ctx)
	}

	if code, ok := input.DestinationCode(ie.Key); ok {
		report, err := self.g.Vend.Select(code)
		if err != nil {
			// unknown destination key, not a catalog code
			self.g.Log.Debugf("ui select ignored: %v", err)
			return StateDefault
		}
		self.display.SetReport(report)
		return StateDefault
	}

	if idx, ok := input.NominalIdx(ie.Key); ok {
		return self.onKeyNominal(idx)
	}

	self.g.Log.Debugf("ui input ignored key=%d source=%s", ie.Key, ie.Source)
	return StateDefault
}

func (self *UI) onKeyNominal(idx int) State {
	nominals := self.g.Config.Fare.Nominals
	if idx >= len(nominals) {
		self.g.Log.Debugf("ui nominal ignored idx=%d", idx)
		return StateDefault
	}
	n := nominals[idx]

	creditMax := currency.Amount(self.g.Config.Money.CreditMax)
	if creditMax > 0 && self.g.Vend.Balance()+currency.Amount(n) > creditMax {
		self.g.Log.Infof("ui insert denied over credit_max=%s", creditMax.Format2D())
		self.display.Message(self.config.Front.MsgError, func() { time.Sleep(time.Second) })
		return StateDefault
	}

	report, err := self.g.Vend.Insert(n)
	if err != nil {
		self.g.Error(errors.Annotate(err, "ui insert"))
		return StateBroken
	}
	self.display.SetReport(report)
	return StateDefault
}

func (self *UI) onKeyPrint(ctx context.Context) State {
	report, tk, err := self.g.Vend.Print()
	switch err.(type) {
	case nil:

	case transaction.InsufficientFundsError:
		self.display.SetReport(report)
		return StateDefault

	default:
		if err == transaction.ErrNoSelection {
			self.display.SetReport(report)
			return StateDefault
		}
		self.g.Error(errors.Annotate(err, "ui print"))
		return StateBroken
	}

	self.display.SetReport(report)
	if perr := self.g.Hardware.Printer.Print(tk); perr != nil {
		self.g.Error(errors.Annotatef(perr, "ui print ticket=%s", tk.String()))
		return StateBroken
	}
	self.teleTransaction(tk)
	return StateDefault
}

func (self *UI) onFrontTimeout(ctx context.Context) State {
	self.g.Log.Debugf("ui state=timeout balance=%s", self.g.Vend.Balance().Format2D())
	_, selected := self.g.Vend.Selected()
	if selected || self.g.Vend.Balance() > 0 {
		report := self.g.Vend.Cancel()
		self.display.SetReport(report)
	}
	return StateFrontEnd
}

func (self *UI) teleTransaction(tk *ticket.Ticket) {
	stat := self.g.Vend.Stat()
	self.g.Tele.StatModify(func(s *tele_api.Stat) {
		s.TicketsSold = stat.Count
		s.Revenue = uint32(stat.Revenue)
		s.ChangeGiven = uint32(stat.ChangeGiven)
		s.Refunded = uint32(stat.Refunded)
	})
	self.g.Tele.Transaction(&tele_api.Telemetry_Transaction{
		TicketId:    tk.ID.String(),
		Destination: tk.Destination,
		Price:       uint32(tk.Fare),
		Paid:        uint32(tk.Paid),
		Change:      uint32(tk.Change),
		Time:        tk.IssuedAt.UnixNano(),
	})
}
