// Package ui runs the kiosk front: reads key events, drives the
// transaction engine and renders status reports to the display.
package ui

import (
	"context"
	"time"

	"github.com/temoto/atomic_clock"
	"github.com/citymetro/kiosk/helpers"
	"github.com/citymetro/kiosk/internal/display"
	"github.com/citymetro/kiosk/internal/state"
	"github.com/citymetro/kiosk/internal/types"
	ui_config "github.com/citymetro/kiosk/internal/ui/config"
)

const (
	msgError         = "error"
	msgDefaultIntro  = "Welcome to RideVibe! ✌️\n\nPick your destination and let's go!"
	msgDefaultBroken = "Out of service.\nPlease use another kiosk."
)

type UI struct { //nolint:maligned
	config       *ui_config.Config
	g            *state.Global
	state        State
	broken       bool
	display      *display.TextDisplay
	lastActivity atomic_clock.Clock
	eventch      chan types.Event
	inputch      chan types.InputEvent

	frontResetTimeout time.Duration

	XXX_testHook func(State)
}

func (self *UI) Init(ctx context.Context) error {
	self.g = state.GetGlobal(ctx)
	self.config = &self.g.Config.UI
	self.setState(StateBoot)

	if self.config.Front.MsgError == "" {
		self.config.Front.MsgError = msgError
	}
	if self.config.Front.MsgStateIntro == "" {
		self.config.Front.MsgStateIntro = msgDefaultIntro
	}
	if self.config.Front.MsgStateBroken == "" {
		self.config.Front.MsgStateBroken = msgDefaultBroken
	}

	self.display = self.g.MustDisplay()
	self.eventch = make(chan types.Event)
	self.inputch = self.g.Hardware.Input.SubscribeChan("ui", self.g.Alive.StopChan())

	self.frontResetTimeout = helpers.IntSecondDefault(self.config.Front.ResetTimeoutSec, defaultResetTimeout)
	return nil
}

func (self *UI) wait(timeout time.Duration) types.Event {
	tmr := time.NewTimer(timeout)
	defer tmr.Stop()

	select {
	case e := <-self.eventch:
		if e.Kind != types.EventInvalid {
			self.lastActivity.SetNow()
		}
		return e

	case e := <-self.inputch:
		if e.Source != "" {
			self.lastActivity.SetNow()
		}
		return types.Event{Kind: types.EventInput, Input: e}

	case <-tmr.C:
		return types.Event{Kind: types.EventTime}

	case <-self.g.Alive.StopChan():
		return types.Event{Kind: types.EventStop}
	}
}
