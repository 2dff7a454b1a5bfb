package tele

import (
	"context"

	"github.com/citymetro/kiosk/log2"
	tele_config "github.com/citymetro/kiosk/tele/config"
)

// Tele transport contract:
// - Init fails only with invalid config, ignores network errors
// - Send* are best effort within network timeout
// - hide "connection" concept from upstream API
// - application may start without network available
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, willPayload []byte) error
	SendState(payload []byte) bool
	SendTelemetry(payload []byte) bool
	Close()
}
