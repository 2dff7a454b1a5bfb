package display

import (
	"io"
	"strings"
)

const consoleRule = "================================"

// ConsoleDevicer renders the status surface to a terminal. Each flush
// prints the full report between rules, imitating a dedicated screen.
type ConsoleDevicer struct {
	W io.Writer
}

func (cd *ConsoleDevicer) Clear() {
	_, _ = io.WriteString(cd.W, "\n"+consoleRule+"\n")
}

func (cd *ConsoleDevicer) Write(b []byte) {
	s := strings.TrimRight(string(b), "\n")
	_, _ = io.WriteString(cd.W, s+"\n"+consoleRule+"\n")
}
