package ticket

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tk := New("Station A", 1000, 2000)
	assert.NotEqual(t, uuid.Nil, tk.ID)
	assert.Equal(t, "Station A", tk.Destination)
	assert.EqualValues(t, 1000, tk.Fare)
	assert.EqualValues(t, 2000, tk.Paid)
	assert.EqualValues(t, 1000, tk.Change)
	assert.False(t, tk.IssuedAt.IsZero())

	exact := New("Station B", 2000, 2000)
	assert.EqualValues(t, 0, exact.Change)
}

func TestNewUnderpaid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New("Station D", 5000, 1000) })
}

func TestRender(t *testing.T) {
	t.Parallel()

	tk := New("Station C", 3000, 5000)
	body := tk.Render()
	lines := strings.Split(body, "\n")
	require.Equal(t, 9, len(lines))
	assert.Contains(t, body, "CITY METRO TICKET")
	assert.Contains(t, body, "TO: Station C")
	assert.Contains(t, body, "FARE: $30.00")
	assert.Contains(t, body, "PAID: $50.00")
	// box must stay aligned
	for _, line := range lines {
		assert.Equal(t, 31, len([]rune(line)), "line=%q", line)
	}
}

func TestConsolePrinter(t *testing.T) {
	t.Parallel()

	buf := bytes.NewBuffer(nil)
	p := &ConsolePrinter{W: buf, QR: true}
	tk := New("Station A", 1000, 1000)
	require.NoError(t, p.Print(tk))
	out := buf.String()
	assert.Contains(t, out, "CITY METRO TICKET")
	// QR block follows the ticket body
	assert.Greater(t, len(out), len(tk.Render())+100)
}
