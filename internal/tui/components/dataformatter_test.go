package components

import (
	"strings"
	"testing"
	"time"
)

func TestASCII(t *testing.T) {
	tests := []struct {
		data []byte
		want string
	}{
		{[]byte("HELLO"), "HELLO"},
		{[]byte("HI\x00\x00"), "HI.."},
		{[]byte("\x1b[2J"), ".[2J"},
		{[]byte{0x7f, 0x80, 0xff}, "..."},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := ASCII(tt.data); got != tt.want {
			t.Errorf("ASCII(%q) = %q, want %q", tt.data, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex([]byte{0x48, 0x00, 0xff}); got != "48 00 FF" {
		t.Errorf("Hex() = %q, want %q", got, "48 00 FF")
	}
}

func TestBody(t *testing.T) {
	data := []byte("OK\r\n")
	tests := []struct {
		name  string
		hex   bool
		ascii bool
		want  string
	}{
		{"ascii only", false, true, "ASCII: OK.."},
		{"hex only", true, false, "HEX: 4F 4B 0D 0A"},
		{"both", true, true, "HEX: 4F 4B 0D 0A  ASCII: OK.."},
		{"neither", false, false, "BYTES: 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df := NewDataFormatter(tt.hex, tt.ascii)
			if got := df.Body(data); got != tt.want {
				t.Errorf("Body() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToggleHex(t *testing.T) {
	df := NewDataFormatter(false, true)
	df.ToggleHex()
	if !df.Mode().ShowHex {
		t.Error("ToggleHex() did not enable hex")
	}
	df.ToggleHex()
	if df.Mode().ShowHex {
		t.Error("ToggleHex() did not disable hex")
	}
}

func TestFormatMessage(t *testing.T) {
	df := NewDataFormatter(false, true)
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6e6, time.UTC)

	rx := df.FormatMessage(Message{Timestamp: ts, Data: []byte("HELLO"), Direction: RX})
	for _, want := range []string{"03:04:05.006", "RX", "ASCII: HELLO"} {
		if !strings.Contains(rx, want) {
			t.Errorf("FormatMessage(RX) = %q, missing %q", rx, want)
		}
	}

	tx := df.FormatMessage(Message{Timestamp: ts, Data: []byte("HELLO"), Direction: TX})
	if !strings.Contains(tx, "TX") {
		t.Errorf("FormatMessage(TX) = %q, missing TX", tx)
	}
}
