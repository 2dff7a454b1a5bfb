// Ticket kiosk application. Reads front panel commands from stdin,
// renders status reports to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/citymetro/kiosk/currency"
	"github.com/citymetro/kiosk/helpers/cli"
	"github.com/citymetro/kiosk/internal/display"
	"github.com/citymetro/kiosk/internal/input"
	"github.com/citymetro/kiosk/internal/state"
	tele "github.com/citymetro/kiosk/internal/tele"
	"github.com/citymetro/kiosk/internal/ticket"
	"github.com/citymetro/kiosk/internal/types"
	"github.com/citymetro/kiosk/internal/ui"
	"github.com/citymetro/kiosk/log2"
)

// set by ldflags -X
var BuildVersion string = "unknown"

const usage = `commands, one per line:
- A B C D     select destination by code
- 5 10 20     insert money
- print  p    print ticket
- cancel c    cancel transaction, get refund
- stop        shutdown
`

func main() {
	flagConfig := flag.String("config", "kiosk.hcl", "")
	flagUsage := flag.Bool("usage", false, "print command help and exit")
	flag.Parse()
	if *flagUsage {
		fmt.Print(usage)
		return
	}

	logger := log2.NewStderr(log2.LInfo)
	if sdnotify("start") {
		// under systemd assume journal logging, remove timestamp
		logger.SetFlags(log2.LServiceFlags)
	} else if isatty.IsTerminal(os.Stderr.Fd()) {
		logger.SetFlags(log2.LInteractiveFlags)
	} else {
		logger.SetFlags(log2.LStdFlags)
	}
	logger.Infof("kiosk version=%s", BuildVersion)

	ctx, g := state.NewContext(logger, tele.New())
	g.BuildVersion = BuildVersion
	config := state.MustReadConfig(logger, state.NewOsFullReader(), *flagConfig)
	g.MustInit(ctx, config)
	logger.Debugf("config=%+v", config)

	d := g.MustDisplay()
	d.SetDevice(&display.ConsoleDevicer{W: os.Stdout})
	g.Hardware.Printer = &ticket.ConsolePrinter{W: os.Stdout, QR: config.Hardware.Printer.QR}

	uix := &ui.UI{}
	if err := uix.Init(ctx); err != nil {
		logger.Fatal(errors.ErrorStack(errors.Annotate(err, "ui init")))
	}
	go g.Hardware.Input.Run(nil)
	go uix.Loop(ctx)
	sdnotify(daemon.SdNotifyReady)

	cli.MainLoop("kiosk", newExecutor(g), newCompleter(g))
	g.Stop()
	g.Alive.Wait()
	g.Tele.Close()
}

// newExecutor maps typed commands to front panel key events.
func newExecutor(g *state.Global) func(string) {
	emit := func(k types.InputKey) {
		g.Hardware.Input.Emit(types.InputEvent{Source: input.ConsoleSourceTag, Key: k})
	}
	return func(line string) {
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			return
		case "help", "usage", "?":
			fmt.Print(usage)
			return
		case "print", "p":
			emit(input.KeyPrint)
			return
		case "cancel", "c":
			emit(input.KeyCancel)
			return
		case "stop", "quit", "exit":
			g.Stop()
			return
		}

		if _, ok := g.Vend.Catalog().Get(strings.ToUpper(line)); ok {
			emit(input.KeyDestination(strings.ToUpper(line)))
			return
		}

		if x, err := strconv.Atoi(line); err == nil {
			value := g.Config.ScaleI(x)
			for idx, n := range g.Config.Fare.Nominals {
				if currency.Amount(n) == value {
					emit(input.KeyNominal(idx))
					return
				}
			}
			g.Log.Errorf("not accepted denomination: %s", line)
			return
		}

		g.Log.Errorf("unknown command: %s (try help)", line)
	}
}

func newCompleter(g *state.Global) func(prompt.Document) []prompt.Suggest {
	suggests := make([]prompt.Suggest, 0, 16)
	for _, d := range g.Vend.Catalog().List() {
		suggests = append(suggests, prompt.Suggest{
			Text:        d.Code,
			Description: fmt.Sprintf("%s $%s", d.Name, d.Price.Format2D()),
		})
	}
	for _, n := range g.Config.Fare.Nominals {
		scale := currency.Amount(g.Config.Money.Scale)
		suggests = append(suggests, prompt.Suggest{
			Text:        strconv.Itoa(int(currency.Amount(n) / scale)),
			Description: fmt.Sprintf("insert $%s", currency.Amount(n).Format2D()),
		})
	}
	suggests = append(suggests,
		prompt.Suggest{Text: "print", Description: "print ticket"},
		prompt.Suggest{Text: "cancel", Description: "cancel transaction"},
		prompt.Suggest{Text: "stop", Description: "shutdown"},
	)
	return func(doc prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, doc.GetWordBeforeCursor(), true)
	}
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
