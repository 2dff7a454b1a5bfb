// Package tele implements telemetry delivery over MQTT.
package tele

import (
	"context"
	"encoding/json"
	"time"

	"github.com/juju/errors"
	"github.com/citymetro/kiosk/log2"
	tele_api "github.com/citymetro/kiosk/tele"
	tele_config "github.com/citymetro/kiosk/tele/config"
)

const DefaultNetworkTimeout = 30 * time.Second

const logMsgDisabled = "tele disabled"

// Tele contract:
// - Init fails only with invalid config, network issues ignored
// - Transaction/Error/State never block the caller on the network
// - State deduplicates, only changes are sent
type tele struct { //nolint:maligned
	config       tele_config.Config
	log          *log2.Log
	transport    Transporter
	kioskId      int32
	stat         tele_api.Stat
	currentState tele_api.State
}

func New() tele_api.Teler { return &tele{} }

// test code sets the transport
func NewWithTransporter(trans Transporter) tele_api.Teler { return &tele{transport: trans} }

func (self *tele) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config) error {
	self.config = teleConfig
	self.log = log
	if self.config.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	self.kioskId = int32(self.config.KioskId)
	self.stat.Lock()
	self.stat.Locked_Reset()
	self.stat.Unlock()

	if !self.config.Enabled {
		return nil
	}
	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	willPayload := []byte{byte(tele_api.State_Disconnected)}
	if err := self.transport.Init(ctx, log, teleConfig, willPayload); err != nil {
		return errors.Annotate(err, "tele transport")
	}
	self.State(tele_api.State_Boot)
	return nil
}

func (self *tele) Close() {
	if !self.config.Enabled {
		return
	}
	self.State(tele_api.State_Disconnected)
	self.transport.Close()
}

func (self *tele) State(s tele_api.State) {
	if !self.config.Enabled {
		return
	}
	if self.currentState != s {
		self.currentState = s
		self.transport.SendState([]byte{byte(s)})
	}
}

func (self *tele) Error(e error) {
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return
	}
	self.log.Debugf("tele.Error: " + errors.ErrorStack(e))
	tm := &tele_api.Telemetry{
		Error: &tele_api.Telemetry_Error{Message: e.Error()},
	}
	if err := self.qpushTelemetry(tm); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry telemetry_error=%#v err=%v", tm.Error, err)
	}
}

func (self *tele) StatModify(fun func(s *tele_api.Stat)) {
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return
	}
	self.stat.Lock()
	fun(&self.stat)
	self.stat.Unlock()
}

func (self *tele) Transaction(tx *tele_api.Telemetry_Transaction) {
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return
	}
	self.stat.Lock()
	stat := self.stat.Telemetry_Stat
	self.stat.Locked_Reset()
	self.stat.Unlock()
	tm := &tele_api.Telemetry{Transaction: tx, Stat: &stat}
	if err := self.qpushTelemetry(tm); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry transaction=%#v err=%v", tx, err)
	}
}

func (self *tele) qpushTelemetry(tm *tele_api.Telemetry) error {
	tm.KioskId = self.kioskId
	if tm.Time == 0 {
		tm.Time = time.Now().UnixNano()
	}
	tm.BuildVersion = self.config.BuildVersion
	payload, err := json.Marshal(tm)
	if err != nil {
		return errors.Annotatef(err, "tele marshal tm=%#v", tm)
	}
	if !self.transport.SendTelemetry(payload) {
		return errors.Errorf("tele transport busy tm=%#v", tm)
	}
	return nil
}
