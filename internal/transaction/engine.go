// Package transaction is the kiosk core: one owned state (balance +
// optional selection) with four operations. Every operation returns a
// full status report for the display surface.
//
// Contract:
// - balance only grows via Insert, only resets via Print/Cancel
// - selection is set and cleared whole, never half
// - failed Print leaves state untouched and may be retried
// - callers are serialized by the engine mutex
package transaction

import (
	"sync"

	"github.com/juju/errors"
	"github.com/citymetro/kiosk/currency"
	"github.com/citymetro/kiosk/internal/fare"
	"github.com/citymetro/kiosk/internal/ticket"
	"github.com/citymetro/kiosk/log2"
)

var ErrNoSelection = errors.New("no destination selected")

// InsufficientFundsError: Print was requested with balance below fare.
// Recoverable, user inserts more and retries.
type InsufficientFundsError struct {
	Fare    currency.Amount
	Balance currency.Amount
}

func (e InsufficientFundsError) Error() string {
	return "insufficient funds: fare=" + e.Fare.Format2D() +
		" balance=" + e.Balance.Format2D() +
		" short=" + e.Shortfall().Format2D()
}

func (e InsufficientFundsError) Shortfall() currency.Amount { return e.Fare - e.Balance }

// Stat counts lifetime sales for telemetry and service reports.
type Stat struct {
	Count       uint32
	Revenue     currency.Amount
	ChangeGiven currency.Amount
	Refunded    currency.Amount
}

type Engine struct {
	Log *log2.Log

	lk       sync.Mutex
	catalog  *fare.Catalog
	cash     currency.NominalGroup
	balance  currency.Amount
	selected *fare.Destination
	stat     Stat
}

func NewEngine(log *log2.Log, catalog *fare.Catalog, nominals []currency.Nominal) (*Engine, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, errors.Errorf("transaction.NewEngine: empty catalog")
	}
	if len(nominals) == 0 {
		return nil, errors.Errorf("transaction.NewEngine: empty denomination set")
	}
	for _, n := range nominals {
		if n == 0 {
			return nil, errors.Errorf("transaction.NewEngine: zero nominal")
		}
	}
	e := &Engine{
		Log:     log,
		catalog: catalog,
	}
	e.cash.SetValid(nominals)
	return e, nil
}

// Select sets the active destination. Prior balance carries over:
// browsing destinations must not eat money already inserted.
func (e *Engine) Select(code string) (string, error) {
	const tag = "vend.select"

	e.lk.Lock()
	defer e.lk.Unlock()

	d, ok := e.catalog.Get(code)
	if !ok {
		// caller contract violation, the external surface only offers catalog codes
		return "", errors.Errorf("%s code=%s not in catalog", tag, code)
	}
	e.selected = &d
	e.Log.Infof("%s code=%s price=%s balance=%s", tag, code, d.Price.Format2D(), e.balance.Format2D())
	return reportSelected(&d, e.balance), nil
}

// Insert adds one accepted bill/coin to the balance.
func (e *Engine) Insert(n currency.Nominal) (string, error) {
	const tag = "vend.insert"

	e.lk.Lock()
	defer e.lk.Unlock()

	if err := e.cash.Add(n, 1); err != nil {
		return "", errors.Annotate(err, tag)
	}
	e.balance += currency.Amount(n)
	e.Log.Infof("%s nominal=%s balance=%s", tag, currency.Amount(n).Format2D(), e.balance.Format2D())
	return reportInserted(currency.Amount(n), e.balance, e.selected), nil
}

// Print issues a ticket when a destination is selected and the balance
// covers the fare. Precondition order is deliberate: "no selection"
// wins over "insufficient funds" because without a selection there is
// no fare to compare against.
func (e *Engine) Print() (string, *ticket.Ticket, error) {
	const tag = "vend.print"

	e.lk.Lock()
	defer e.lk.Unlock()

	if e.selected == nil {
		e.Log.Infof("%s denied: no selection", tag)
		return reportErrNoSelection(), nil, ErrNoSelection
	}
	if e.balance < e.selected.Price {
		ierr := InsufficientFundsError{Fare: e.selected.Price, Balance: e.balance}
		e.Log.Infof("%s denied: %s", tag, ierr.Error())
		return reportErrInsufficient(ierr), nil, ierr
	}

	t := ticket.New(e.selected.Name, e.selected.Price, e.balance)
	e.stat.Count++
	e.stat.Revenue += t.Fare
	e.stat.ChangeGiven += t.Change
	e.Log.Infof("%s issued %s", tag, t.String())

	e.lockedReset()
	return reportPrinted(t), t, nil
}

// Cancel always succeeds, refunding whatever was inserted.
func (e *Engine) Cancel() string {
	const tag = "vend.cancel"

	e.lk.Lock()
	defer e.lk.Unlock()

	refund := e.balance
	e.stat.Refunded += refund
	e.lockedReset()
	e.Log.Infof("%s refund=%s", tag, refund.Format2D())
	return reportCancelled(refund)
}

func (e *Engine) lockedReset() {
	e.balance = 0
	e.selected = nil
	e.cash.Clear()
}

// Catalog is immutable, safe to share.
func (e *Engine) Catalog() *fare.Catalog { return e.catalog }

func (e *Engine) Balance() currency.Amount {
	e.lk.Lock()
	defer e.lk.Unlock()
	return e.balance
}

// Selected returns the active destination, ok=false while idle.
func (e *Engine) Selected() (fare.Destination, bool) {
	e.lk.Lock()
	defer e.lk.Unlock()
	if e.selected == nil {
		return fare.Destination{}, false
	}
	return *e.selected, true
}

func (e *Engine) Stat() Stat {
	e.lk.Lock()
	defer e.lk.Unlock()
	return e.stat
}

// Cash is a copy of the denomination counts of the current transaction.
func (e *Engine) Cash() *currency.NominalGroup {
	e.lk.Lock()
	defer e.lk.Unlock()
	return e.cash.Copy()
}
