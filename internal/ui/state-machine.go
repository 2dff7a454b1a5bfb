package ui

import (
	"context"
	"sync/atomic"

	tele_api "github.com/citymetro/kiosk/tele"
)

//go:generate stringer -type=State -trimprefix=State
type State uint32

const (
	StateDefault State = iota

	StateBoot   // t=onstart +ok=FrontBegin +err=Broken
	StateBroken // t=input/stop, no way out until restart

	StateFrontBegin   // show intro ->FrontSelect
	StateFrontSelect  // t=input/timeout, engine ops happen here
	StateFrontTimeout // refund abandoned money ->FrontEnd
	StateFrontEnd     // ->FrontBegin

	StateStop
)

func (self *UI) State() State               { return State(atomic.LoadUint32((*uint32)(&self.state))) }
func (self *UI) setState(new State)         { atomic.StoreUint32((*uint32)(&self.state), uint32(new)) }
func (self *UI) XXX_testSetState(new State) { self.setState(new) }

func (self *UI) Loop(ctx context.Context) {
	self.g.Alive.Add(1)
	defer self.g.Alive.Done()
	next := StateDefault
	for next != StateStop && self.g.Alive.IsRunning() {
		current := self.State()
		next = self.enter(ctx, current)
		if next == StateDefault {
			self.g.Log.Fatalf("ui state=%s next=default", current.String())
		}
		self.exit(ctx, current, next)

		if !self.g.Alive.IsRunning() {
			self.g.Log.Debugf("ui Loop stopping because g.Alive")
			next = StateStop
		}

		self.setState(next)
		if self.XXX_testHook != nil {
			self.XXX_testHook(next)
		}
	}
	self.g.Log.Debugf("ui loop end")
}

func (self *UI) enter(ctx context.Context, s State) State {
	self.g.Log.Debugf("ui enter %s", s.String())
	switch s {
	case StateBoot:
		self.g.Tele.State(tele_api.State_Boot)
		if self.g.Vend == nil {
			return StateBroken
		}
		self.broken = false
		return StateFrontBegin

	case StateBroken:
		return self.onBroken(ctx)

	case StateFrontBegin:
		self.broken = false
		return self.onFrontBegin(ctx)

	case StateFrontSelect:
		return self.onFrontSelect(ctx)

	case StateFrontTimeout:
		return self.onFrontTimeout(ctx)

	case StateFrontEnd:
		return StateFrontBegin

	case StateStop:
		return StateStop

	default:
		self.g.Log.Fatalf("unhandled ui state=%s", s.String())
		return StateDefault
	}
}

func (self *UI) exit(ctx context.Context, current, next State) {
	self.g.Log.Debugf("ui exit %s -> %s", current.String(), next.String())

	if next != StateBroken {
		self.broken = false
	}
}
