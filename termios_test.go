package uartlog

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestMakeRaw(t *testing.T) {
	starts := map[string]unix.Termios{
		"zero": {},
		"cooked": {
			Iflag: unix.ICRNL | unix.IXON | unix.BRKINT,
			Oflag: unix.OPOST | unix.ONLCR,
			Cflag: unix.CS7 | unix.PARENB | unix.B9600,
			Lflag: unix.ICANON | unix.ECHO | unix.ECHOE | unix.ISIG,
		},
		"all bits set": {
			Iflag:  ^uint32(0),
			Oflag:  ^uint32(0),
			Cflag:  ^uint32(0),
			Lflag:  ^uint32(0),
			Ispeed: ^uint32(0),
			Ospeed: ^uint32(0),
		},
	}

	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			tio := start
			for i := range tio.Cc {
				tio.Cc[i] = 0xff
			}
			if err := makeRaw(&tio, DefaultConfig()); err != nil {
				t.Fatalf("makeRaw() error = %v", err)
			}

			if tio.Cflag&unix.CBAUD != unix.B115200 {
				t.Errorf("Cflag speed = %#o, want B115200", tio.Cflag&unix.CBAUD)
			}
			if tio.Ispeed != unix.B115200 || tio.Ospeed != unix.B115200 {
				t.Errorf("Ispeed/Ospeed = %#o/%#o, want B115200", tio.Ispeed, tio.Ospeed)
			}
			if tio.Cflag&unix.CSIZE != unix.CS8 {
				t.Errorf("Cflag CSIZE = %#o, want CS8", tio.Cflag&unix.CSIZE)
			}
			for bit, name := range map[uint32]string{unix.PARENB: "PARENB", unix.CSTOPB: "CSTOPB", unix.CRTSCTS: "CRTSCTS"} {
				if tio.Cflag&bit != 0 {
					t.Errorf("Cflag %s set", name)
				}
			}
			if tio.Cflag&(unix.CREAD|unix.CLOCAL) != unix.CREAD|unix.CLOCAL {
				t.Errorf("Cflag CREAD|CLOCAL not set")
			}
			for bit, name := range map[uint32]string{
				unix.ICANON: "ICANON", unix.ECHO: "ECHO", unix.ECHOE: "ECHOE",
				unix.ECHONL: "ECHONL", unix.ISIG: "ISIG",
			} {
				if tio.Lflag&bit != 0 {
					t.Errorf("Lflag %s set", name)
				}
			}
			for bit, name := range map[uint32]string{
				unix.IXON: "IXON", unix.IXOFF: "IXOFF", unix.IXANY: "IXANY",
				unix.IGNBRK: "IGNBRK", unix.BRKINT: "BRKINT", unix.PARMRK: "PARMRK",
				unix.ISTRIP: "ISTRIP", unix.INLCR: "INLCR", unix.IGNCR: "IGNCR", unix.ICRNL: "ICRNL",
			} {
				if tio.Iflag&bit != 0 {
					t.Errorf("Iflag %s set", name)
				}
			}
			if tio.Oflag&(unix.OPOST|unix.ONLCR) != 0 {
				t.Errorf("Oflag OPOST/ONLCR set: %#o", tio.Oflag)
			}
			if tio.Cc[unix.VMIN] != 0 {
				t.Errorf("VMIN = %d, want 0", tio.Cc[unix.VMIN])
			}
			if tio.Cc[unix.VTIME] != 10 {
				t.Errorf("VTIME = %d, want 10", tio.Cc[unix.VTIME])
			}
		})
	}
}

func TestMakeRawReadTimeout(t *testing.T) {
	config := DefaultConfig()
	if err := WithReadTimeout(2500 * time.Millisecond)(&config); err != nil {
		t.Fatal(err)
	}

	var tio unix.Termios
	if err := makeRaw(&tio, config); err != nil {
		t.Fatalf("makeRaw() error = %v", err)
	}
	if tio.Cc[unix.VTIME] != 25 {
		t.Errorf("VTIME = %d, want 25", tio.Cc[unix.VTIME])
	}
}

func TestMakeRawInvalidBaud(t *testing.T) {
	config := DefaultConfig()
	config.BaudRate = 123456

	var tio unix.Termios
	if err := makeRaw(&tio, config); err != ErrInvalidBaudRate {
		t.Errorf("makeRaw() error = %v, want ErrInvalidBaudRate", err)
	}
}

func TestGetBaudRate(t *testing.T) {
	tests := []struct {
		input    int
		hasError bool
	}{
		{115200, false},
		{9600, false},
		{57600, false},
		{4000000, false},
		{123456, true}, // Invalid baud rate
		{0, true},
	}

	for _, test := range tests {
		result, err := getBaudRate(test.input)
		if test.hasError {
			if err != ErrInvalidBaudRate {
				t.Errorf("Expected ErrInvalidBaudRate for %d, got %v", test.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for baud rate %d: %v", test.input, err)
		}
		if result == 0 {
			t.Errorf("Got zero result for valid baud rate %d", test.input)
		}
	}
}
