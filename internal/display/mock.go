package display

func NewMockTextDisplay(opt *TextDisplayConfig) *TextDisplay {
	d, err := NewTextDisplay(opt)
	if err != nil {
		panic(err)
	}
	d.dev = new(MockDevicer)
	return d
}

type MockDevicer struct {
	last []byte
}

func (m *MockDevicer) Clear() { m.last = nil }

func (m *MockDevicer) Write(b []byte) { m.last = append([]byte(nil), b...) }

func (m *MockDevicer) Last() string { return string(m.last) }
