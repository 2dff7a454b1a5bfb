package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/citymetro/kiosk/currency"
	"github.com/citymetro/kiosk/helpers"
	"github.com/citymetro/kiosk/internal/display"
	"github.com/citymetro/kiosk/internal/fare"
	"github.com/citymetro/kiosk/internal/input"
	"github.com/citymetro/kiosk/internal/ticket"
	"github.com/citymetro/kiosk/internal/transaction"
	"github.com/citymetro/kiosk/log2"
	tele_api "github.com/citymetro/kiosk/tele"
)

type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Hardware     struct {
		Input   *input.Dispatch
		Printer ticket.Printer
		display struct {
			once sync.Once
			d    *display.TextDisplay
			err  error
		}
	}
	Log  *log2.Log
	Tele tele_api.Teler
	Vend *transaction.Engine

	initInputOnce sync.Once
}

const ContextKey = "run/state-global"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg
	g.Config.Tele.BuildVersion = g.BuildVersion

	// Tele is the remote error reporting mechanism, init before anything else
	if err := g.Tele.Init(ctx, g.Log, g.Config.Tele); err != nil {
		return errors.Annotate(err, "tele init")
	}

	errs := make([]error, 0)

	if g.Config.Money.Scale == 0 {
		g.Config.Money.Scale = 1
		g.Log.Errorf("config: money.scale is not set")
	} else if g.Config.Money.Scale < 0 {
		errs = append(errs, errors.NotValidf("config: money.scale < 0"))
	}
	g.Config.Money.CreditMax *= g.Config.Money.Scale

	errs = append(errs, g.initFare()...)

	g.initInput()

	return helpers.FoldErrors(errs)
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf(errors.ErrorStack(err))
		g.Tele.Error(err)
	}
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

// Display returns the shared text display, creating it on first use.
func (g *Global) Display() (*display.TextDisplay, error) {
	g.Hardware.display.once.Do(func() {
		opt := &display.TextDisplayConfig{Codepage: g.Config.Hardware.Display.Codepage}
		g.Hardware.display.d, g.Hardware.display.err = display.NewTextDisplay(opt)
		if g.Hardware.display.err != nil {
			g.Hardware.display.err = errors.Annotate(g.Hardware.display.err, "display init")
		}
	})
	return g.Hardware.display.d, g.Hardware.display.err
}

func (g *Global) MustDisplay() *display.TextDisplay {
	d, err := g.Display()
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
	return d
}

// test code presets the display before any Display() caller
func (g *Global) SetDisplay(d *display.TextDisplay) {
	g.Hardware.display.once.Do(func() {})
	g.Hardware.display.d = d
	g.Hardware.display.err = nil
}

// initFare resolves config money values into the fare catalog and the
// accepted denomination set. Missing config falls back to the stock
// catalog.
func (g *Global) initFare() []error {
	errs := make([]error, 0)

	var catalog *fare.Catalog
	if len(g.Config.Fare.Destinations) == 0 {
		catalog = fare.Default()
	} else {
		items := make([]fare.Destination, 0, len(g.Config.Fare.Destinations))
		for _, dc := range g.Config.Fare.Destinations {
			dc.Price = g.Config.ScaleI(dc.XXX_Price)
			items = append(items, fare.Destination{Code: dc.Code, Name: dc.Name, Price: dc.Price})
		}
		var err error
		if catalog, err = fare.NewCatalog(items); err != nil {
			return append(errs, errors.Annotate(err, "config fare"))
		}
	}

	if len(g.Config.Fare.XXX_Nominals) == 0 {
		g.Config.Fare.Nominals = fare.DefaultNominals()
	} else {
		g.Config.Fare.Nominals = make([]currency.Nominal, 0, len(g.Config.Fare.XXX_Nominals))
		for _, n := range g.Config.Fare.XXX_Nominals {
			g.Config.Fare.Nominals = append(g.Config.Fare.Nominals, currency.Nominal(g.Config.ScaleI(n)))
		}
	}

	vend, err := transaction.NewEngine(g.Log, catalog, g.Config.Fare.Nominals)
	if err != nil {
		return append(errs, errors.Annotate(err, "config fare"))
	}
	g.Vend = vend
	return errs
}

func (g *Global) initInput() {
	g.initInputOnce.Do(func() {
		g.Hardware.Input = input.NewDispatch(g.Log, g.Alive.StopChan())
	})
}
