package state

import (
	"context"
	"testing"

	"github.com/temoto/alive/v2"
	"github.com/citymetro/kiosk/internal/display"
	"github.com/citymetro/kiosk/internal/ticket"
	"github.com/citymetro/kiosk/log2"
	tele_api "github.com/citymetro/kiosk/tele"
)

func NewContext(log *log2.Log, teler tele_api.Teler) (context.Context, *Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}

	g := &Global{
		Alive: alive.NewAlive(),
		Log:   log,
		Tele:  teler,
	}
	g.Hardware.Printer = ticket.NullPrinter{}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, ContextKey, g)

	return ctx, g
}

func NewTestContext(t testing.TB, confString string) (context.Context, *Global) {
	fs := NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	log := log2.NewTest(t, log2.LDebug)
	// log := log2.NewStderr(log2.LDebug) // useful with panics
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log, tele_api.NewStub())
	g.SetDisplay(display.NewMockTextDisplay(&display.TextDisplayConfig{}))
	g.MustInit(ctx, MustReadConfig(log, fs, "test-inline"))

	return ctx, g
}
