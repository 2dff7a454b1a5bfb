// Package tele is the telemetry API, kiosk side.
// Payloads are JSON, see Telemetry.
package tele

import (
	"context"
	"sync"

	"github.com/citymetro/kiosk/log2"
	tele_config "github.com/citymetro/kiosk/tele/config"
)

type State byte

const (
	State_Invalid State = iota
	State_Boot
	State_Nominal
	State_Disconnected
	State_Problem
	State_Service
)

func (s State) String() string {
	switch s {
	case State_Boot:
		return "boot"
	case State_Nominal:
		return "nominal"
	case State_Disconnected:
		return "disconnected"
	case State_Problem:
		return "problem"
	case State_Service:
		return "service"
	}
	return "invalid"
}

// Telemetry is the wire envelope. Exactly one of Error, Transaction,
// Stat is set per message.
type Telemetry struct {
	KioskId      int32                  `json:"kiosk_id"`
	Time         int64                  `json:"time"`
	BuildVersion string                 `json:"build_version,omitempty"`
	Error        *Telemetry_Error       `json:"error,omitempty"`
	Transaction  *Telemetry_Transaction `json:"transaction,omitempty"`
	Stat         *Telemetry_Stat        `json:"stat,omitempty"`
}

type Telemetry_Error struct {
	Message string `json:"message"`
}

// Telemetry_Transaction reports one issued ticket. Money values are
// minor currency units.
type Telemetry_Transaction struct {
	TicketId    string `json:"ticket_id"`
	Destination string `json:"destination"`
	Price       uint32 `json:"price"`
	Paid        uint32 `json:"paid"`
	Change      uint32 `json:"change"`
	Time        int64  `json:"time"`
}

type Telemetry_Stat struct {
	TicketsSold uint32 `json:"tickets_sold"`
	Revenue     uint32 `json:"revenue"`
	ChangeGiven uint32 `json:"change_given"`
	Refunded    uint32 `json:"refunded"`
}

// Low priority telemetry buffer. Can be updated at any time,
// sent with the next more important message.
type Stat struct {
	sync.Mutex
	Telemetry_Stat
}

// Caller must hold self.Mutex.
func (self *Stat) Locked_Reset() {
	self.Telemetry_Stat = Telemetry_Stat{}
}

// Teler interface Telemetry client, kiosk side.
// Not for external public usage.
type Teler interface {
	Init(context.Context, *log2.Log, tele_config.Config) error
	Close()
	State(State)
	Error(error)
	StatModify(func(*Stat))
	Transaction(*Telemetry_Transaction)
}

type stub struct{}

func (stub) Init(context.Context, *log2.Log, tele_config.Config) error { return nil }
func (stub) Close()                                                    {}
func (stub) State(State)                                               {}
func (stub) Error(error)                                               {}
func (stub) StatModify(func(*Stat))                                    {}
func (stub) Transaction(*Telemetry_Transaction)                        {}

func NewStub() Teler { return stub{} }
