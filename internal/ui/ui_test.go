package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/citymetro/kiosk/internal/state"
	"github.com/citymetro/kiosk/internal/types"
	"github.com/citymetro/kiosk/internal/ui"
)

func TestFrontVend(t *testing.T) {
	t.Parallel()

	ctx, g := state.NewTestContext(t, `
ui { front { msg_intro = "hello kiosk" reset_sec = 5 } }`)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateFrontBegin, ui.StateStop)
	go env.ui.Loop(ctx)

	steps := []step{
		{expect: "hello kiosk", inev: env._Key('B')},
		{expect: "Ticket Price: $20.00", inev: env._Nominal(1)},
		{expect: "Current Balance: $10.00", inev: env._Nominal(1)},
		{expect: "Press PRINT TICKET to continue.", inev: env._KeyPrint},
		{expect: "🎫 TICKET PRINTED! 🎫", inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
	assert.EqualValues(t, 0, g.Vend.Balance())
	assert.EqualValues(t, 1, g.Vend.Stat().Count)
}

func TestFrontPrintTooEarly(t *testing.T) {
	t.Parallel()

	ctx, g := state.NewTestContext(t, `
ui { front { msg_intro = "too early" reset_sec = 5 } }`)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateFrontBegin, ui.StateStop)
	go env.ui.Loop(ctx)

	steps := []step{
		{expect: "too early", inev: env._KeyPrint},
		{expect: "No destination selected!", inev: env._Key('D')},
		{expect: "Amount Needed: $50.00", inev: env._Nominal(1)},
		{expect: "Still needed: $40.00", inev: env._KeyPrint},
		{expect: "Short by: $40.00", inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
	// failed prints must not touch the transaction
	assert.EqualValues(t, 1000, g.Vend.Balance())
	if _, ok := g.Vend.Selected(); !ok {
		t.Error("selection lost after failed print")
	}
}

func TestFrontCancel(t *testing.T) {
	t.Parallel()

	ctx, g := state.NewTestContext(t, `
ui { front { msg_intro = "cancel test" reset_sec = 5 } }`)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateFrontBegin, ui.StateStop)
	go env.ui.Loop(ctx)

	steps := []step{
		{expect: "cancel test", inev: env._Nominal(0)},
		{expect: "Please select a destination.", inev: env._KeyCancel},
		{expect: "💰 Returning: $5.00", inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
	assert.EqualValues(t, 0, g.Vend.Balance())
	assert.EqualValues(t, 500, g.Vend.Stat().Refunded)
}

func TestFrontTimeoutRefund(t *testing.T) {
	t.Parallel()

	ctx, g := state.NewTestContext(t, `
ui { front { msg_intro = "timeout test" reset_sec = 1 } }`)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateFrontBegin, ui.StateFrontEnd)
	go env.ui.Loop(ctx)

	steps := []step{
		{expect: "timeout test", inev: env._Nominal(2)},
		{expect: "MONEY INSERTED", inev: types.Event{Kind: types.EventTime}},
		{expect: "TRANSACTION CANCELLED"},
		{},
	}
	uiTestWait(t, env, steps)
	assert.EqualValues(t, 0, g.Vend.Balance())
	assert.EqualValues(t, 2000, g.Vend.Stat().Refunded)
}
