package input

import "github.com/citymetro/kiosk/internal/types"

// Key layout of the kiosk front panel. Destination buttons carry their
// catalog code letter, cash buttons are indexed into the configured
// denomination list.
const (
	ConsoleSourceTag = "console"

	KeyPrint  types.InputKey = '#'
	KeyCancel types.InputKey = '*'
)

const keyNominalBase types.InputKey = 0x100

func KeyNominal(idx int) types.InputKey {
	return keyNominalBase + types.InputKey(idx)
}

// NominalIdx maps a cash button back to its denomination index.
func NominalIdx(k types.InputKey) (int, bool) {
	if k < keyNominalBase {
		return 0, false
	}
	return int(k - keyNominalBase), true
}

func KeyDestination(code string) types.InputKey {
	if len(code) != 1 {
		panic("code error destination code must be one letter: " + code)
	}
	return types.InputKey(code[0])
}

// DestinationCode maps a destination button back to its catalog code.
func DestinationCode(k types.InputKey) (string, bool) {
	if k >= 'A' && k <= 'Z' {
		return string(rune(k)), true
	}
	return "", false
}
