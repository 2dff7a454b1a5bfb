package transaction

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/citymetro/kiosk/currency"
	"github.com/citymetro/kiosk/internal/fare"
	"github.com/citymetro/kiosk/log2"
)

func newTestEngine(t testing.TB) *Engine {
	e, err := NewEngine(log2.NewTest(t, log2.LDebug), fare.Default(), fare.DefaultNominals())
	require.NoError(t, err)
	return e
}

func requireIdle(t testing.TB, e *Engine) {
	assert.EqualValues(t, 0, e.Balance())
	_, ok := e.Selected()
	assert.False(t, ok)
}

func TestNewEngineInvalid(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)

	_, err := NewEngine(log, nil, fare.DefaultNominals())
	assert.Error(t, err)
	_, err = NewEngine(log, fare.Default(), nil)
	assert.Error(t, err)
	_, err = NewEngine(log, fare.Default(), []currency.Nominal{500, 0})
	assert.Error(t, err)
}

func TestSelectSetsCatalogFare(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	for _, d := range fare.Default().List() {
		_, err := e.Select(d.Code)
		require.NoError(t, err)
		sel, ok := e.Selected()
		require.True(t, ok)
		assert.Equal(t, d.Price, sel.Price)
		assert.Equal(t, d.Name, sel.Name)
	}
	// prior balance must survive re-selection
	_, err := e.Insert(2000)
	require.NoError(t, err)
	_, err = e.Select("A")
	require.NoError(t, err)
	assert.EqualValues(t, 2000, e.Balance())
}

func TestSelectUnknownCode(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Select("Z")
	assert.Error(t, err)
	requireIdle(t, e)
}

func TestInsertAdditive(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	total := currency.Amount(0)
	for _, n := range []currency.Nominal{500, 500, 1000, 2000, 500} {
		_, err := e.Insert(n)
		require.NoError(t, err)
		total += currency.Amount(n)
		assert.Equal(t, total, e.Balance())
	}
	assert.EqualValues(t, 4500, e.Balance())
}

func TestInsertInvalidNominal(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Insert(100)
	require.Error(t, err)
	assert.Equal(t, currency.ErrNominalInvalid, errors.Cause(err))
	assert.EqualValues(t, 0, e.Balance())
}

func TestPrintNoSelection(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	report, tk, err := e.Print()
	assert.Equal(t, ErrNoSelection, err)
	assert.Nil(t, tk)
	assert.Equal(t, `═══════════════════════════════
          ⚠ ERROR
═══════════════════════════════

No destination selected!

Please select a destination first.`, report)
	requireIdle(t, e)

	// even with money inserted, selection check comes first
	_, err = e.Insert(2000)
	require.NoError(t, err)
	_, tk, err = e.Print()
	assert.Equal(t, ErrNoSelection, err)
	assert.Nil(t, tk)
	assert.EqualValues(t, 2000, e.Balance())
}

func TestPrintInsufficientIdempotent(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Select("D")
	require.NoError(t, err)
	_, err = e.Insert(1000)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		report, tk, err := e.Print()
		require.Error(t, err)
		assert.Nil(t, tk)
		ierr, ok := err.(InsufficientFundsError)
		require.True(t, ok, "expected InsufficientFundsError, got %T", err)
		assert.EqualValues(t, 5000, ierr.Fare)
		assert.EqualValues(t, 1000, ierr.Balance)
		assert.EqualValues(t, 4000, ierr.Shortfall())
		assert.Contains(t, report, "Short by: $40.00")
		assert.EqualValues(t, 1000, e.Balance())
		if _, ok := e.Selected(); !ok {
			t.Fatal("selection must survive failed print")
		}
	}
}

func TestCancelAlwaysResets(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	// idle cancel
	report := e.Cancel()
	assert.NotContains(t, report, "Returning")
	requireIdle(t, e)

	// cancel with money only
	_, err := e.Insert(500)
	require.NoError(t, err)
	report = e.Cancel()
	assert.Contains(t, report, "💰 Returning: $5.00")
	requireIdle(t, e)

	// cancel with selection and money
	_, err = e.Select("C")
	require.NoError(t, err)
	_, err = e.Insert(2000)
	require.NoError(t, err)
	report = e.Cancel()
	assert.Contains(t, report, "💰 Returning: $20.00")
	assert.Contains(t, report, "Welcome to City Metro!")
	requireIdle(t, e)
}

// Full happy path: select B, feed two tens, print.
func TestVendExactPayment(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	report, err := e.Select("B")
	require.NoError(t, err)
	assert.Equal(t, `═══════════════════════════════
       TICKET SELECTED
═══════════════════════════════

Destination: Station B
Ticket Price: $20.00

───────────────────────────────
Current Balance: $0.00
Amount Needed: $20.00

⚠ Please insert money to continue.`, report)

	report, err = e.Insert(1000)
	require.NoError(t, err)
	assert.Equal(t, `═══════════════════════════════
       MONEY INSERTED
═══════════════════════════════

Inserted: $10.00
Current Balance: $10.00

───────────────────────────────
Selected: Station B
Price: $20.00

Still needed: $10.00`, report)

	report, err = e.Insert(1000)
	require.NoError(t, err)
	assert.Equal(t, `═══════════════════════════════
       MONEY INSERTED
═══════════════════════════════

Inserted: $10.00
Current Balance: $20.00

───────────────────────────────
Selected: Station B
Price: $20.00

✓ Sufficient funds!
Press PRINT TICKET to continue.`, report)

	report, tk, err := e.Print()
	require.NoError(t, err)
	require.NotNil(t, tk)
	assert.EqualValues(t, 2000, tk.Fare)
	assert.EqualValues(t, 2000, tk.Paid)
	assert.EqualValues(t, 0, tk.Change)
	assert.Equal(t, `═══════════════════════════════
     🎫 TICKET PRINTED! 🎫
═══════════════════════════════

╔═════════════════════════════╗
║     CITY METRO TICKET       ║
╠═════════════════════════════╣
║ TO: Station B             ║
║ FARE: $20.00              ║
║ PAID: $20.00              ║
╚═════════════════════════════╝

Thank you for traveling with us!
Have a safe journey! 🚇`, report)
	requireIdle(t, e)
}

// Money first, then a cheaper destination: change is returned.
func TestVendWithChange(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	report, err := e.Insert(2000)
	require.NoError(t, err)
	assert.Contains(t, report, "Please select a destination.")

	report, err = e.Select("A")
	require.NoError(t, err)
	assert.Contains(t, report, "✓ Sufficient funds! Press PRINT TICKET.")

	report, tk, err := e.Print()
	require.NoError(t, err)
	require.NotNil(t, tk)
	assert.EqualValues(t, 1000, tk.Change)
	assert.Contains(t, report, "💰 CHANGE RETURNED: $10.00")
	requireIdle(t, e)
}

func TestStat(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Select("A")
	require.NoError(t, err)
	_, err = e.Insert(2000)
	require.NoError(t, err)
	_, _, err = e.Print()
	require.NoError(t, err)

	_, err = e.Insert(500)
	require.NoError(t, err)
	_ = e.Cancel()

	st := e.Stat()
	assert.EqualValues(t, 1, st.Count)
	assert.EqualValues(t, 1000, st.Revenue)
	assert.EqualValues(t, 1000, st.ChangeGiven)
	assert.EqualValues(t, 500, st.Refunded)
}

func TestCashCounts(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Insert(500)
	require.NoError(t, err)
	_, err = e.Insert(500)
	require.NoError(t, err)
	_, err = e.Insert(2000)
	require.NoError(t, err)
	assert.Equal(t, "20.00:1,5.00:2,total:30.00", e.Cash().String())
	_ = e.Cancel()
	assert.EqualValues(t, 0, e.Cash().Total())
}
