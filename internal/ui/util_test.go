package ui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/citymetro/kiosk/internal/input"
	"github.com/citymetro/kiosk/internal/state"
	"github.com/citymetro/kiosk/internal/types"
	"github.com/citymetro/kiosk/internal/ui"
)

type tenv struct {
	ctx context.Context
	g   *state.Global
	ui  *ui.UI

	displayUpdated chan string
	uiState        chan ui.State
	_Key           func(types.InputKey) types.Event
	_KeyPrint      types.Event
	_KeyCancel     types.Event
	_Nominal       func(idx int) types.Event
	_Stop          types.Event
}

// expect is a substring of the current display report.
type step struct {
	expect string
	inev   types.Event
	fun    func()
}

func uiTestSetup(t testing.TB, env *tenv, initState, endState ui.State) {
	env.ui = &ui.UI{
		XXX_testHook: func(s ui.State) {
			t.Logf("testHook %s", s.String())
			if env.uiState != nil {
				select {
				case env.uiState <- s:
				default:
					t.Fatalf("add requireState(%s)", s.String())
				}
			}
			switch s {
			case endState: // success path
				env.g.Alive.Stop()
			case ui.StateDefault:
				t.Fatalf("ui switch state=default")
				env.g.Alive.Stop()
			}
		},
	}
	err := env.ui.Init(env.ctx)
	require.NoError(t, err)
	env.ui.XXX_testSetState(initState)
	env.displayUpdated = make(chan string)
	env.g.MustDisplay().SetUpdateChan(env.displayUpdated)
	go env.g.Hardware.Input.Run(nil)

	mkKey := func(k types.InputKey) types.Event {
		return types.Event{Kind: types.EventInput, Input: types.InputEvent{Source: input.ConsoleSourceTag, Key: k}}
	}
	env._Key = mkKey
	env._KeyPrint = mkKey(input.KeyPrint)
	env._KeyCancel = mkKey(input.KeyCancel)
	env._Nominal = func(idx int) types.Event { return mkKey(input.KeyNominal(idx)) }
	env._Stop = types.Event{Kind: types.EventStop}
}

func uiTestWait(t testing.TB, env *tenv, steps []step) {
	waitch := env.g.Alive.WaitChan()

	for _, step := range steps {
		if step.fun != nil {
			step.fun()
			continue
		}

		select {
		case current := <-env.displayUpdated:
			t.Logf("display:\n%s\n%s\nevent=%s", current, strings.Repeat("-", 31), step.inev.String())
			require.Contains(t, current, step.expect)
			switch step.inev.Kind {
			case types.EventInvalid:

			case types.EventInput:
				env.g.Hardware.Input.Emit(step.inev.Input)

			case types.EventStop:
				env.g.Log.Debugf("emit types.EventStop")
				env.g.Alive.Stop()
				env.g.Alive.Wait()
				return

			case types.EventTime:

			default:
				t.Fatalf("test code error not supported event=%s", step.inev.String())
			}

		case <-waitch:
			if !(step.expect == "" && step.inev.Kind == types.EventInvalid) {
				t.Error("ui stopped before end of test")
			}
			return
		}
	}
	if env.g.Alive.IsRunning() {
		t.Logf("display:\n%s", env.g.MustDisplay().State())
		t.Error("ui still running")
	}
	env.g.Alive.Wait()
}
