package cfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/allbin/uartlog"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(New())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := &Config{
		Settings:  uartlog.DefaultSettings(),
		LogLevel:  DefaultLogLevel,
		Verbosity: DefaultVerbosity,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("UARTLOG_DEVICE", "/dev/ttyUSB0")
	t.Setenv("UARTLOG_BAUD", "9600")
	t.Setenv("UARTLOG_BACKOFF", "250ms")
	t.Setenv("UARTLOG_MAX_ATTEMPTS", "10")
	t.Setenv("UARTLOG_DRAIN", "true")

	c, err := Load(New())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if c.Device != "/dev/ttyUSB0" {
		t.Errorf("Device = %q, want /dev/ttyUSB0", c.Device)
	}
	if c.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", c.BaudRate)
	}
	if c.Backoff != 250*time.Millisecond {
		t.Errorf("Backoff = %v, want 250ms", c.Backoff)
	}
	if c.MaxAttempts != 10 {
		t.Errorf("MaxAttempts = %d, want 10", c.MaxAttempts)
	}
	if !c.Drain {
		t.Error("Drain = false, want true")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uartlog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `
device: /dev/ttyS2
log_file: /tmp/tokens.txt
backend: portable
read_timeout: 500ms
min_length: 64
log_level: 4
`)

	v := New()
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := uartlog.DefaultSettings()
	want.Device = "/dev/ttyS2"
	want.LogFile = "/tmp/tokens.txt"
	want.Backend = uartlog.BackendPortable
	want.ReadTimeout = 500 * time.Millisecond
	want.MinLength = 64
	if diff := cmp.Diff(want, c.Settings); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
	if c.LogLevel != 4 {
		t.Errorf("LogLevel = %d, want 4", c.LogLevel)
	}
}

func TestReadFileMissing(t *testing.T) {
	if err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("ReadFile() with a missing explicit file succeeded, want error")
	}
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, "device: /dev/ttyS2\nbaud: 57600\nmin_length: 32\n")
	t.Setenv("UARTLOG_BAUD", "38400")
	t.Setenv("UARTLOG_MIN_LENGTH", "16")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("baud", 0, "")
	flags.Int("min-length", 0, "")
	flags.String("device", "", "")
	if err := flags.Parse([]string{"--baud", "19200"}); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := BindFlags(v, flags); err != nil {
		t.Fatalf("BindFlags() failed: %v", err)
	}
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"flag beats env", c.BaudRate, 19200},
		{"env beats file", c.MinLength, 16},
		{"file beats default", c.Device, "/dev/ttyS2"},
		{"default", c.LogFile, uartlog.DefaultLogFile},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"bad baud", map[string]string{"UARTLOG_BAUD": "12345"}, uartlog.ErrInvalidBaudRate},
		{"min length above buffer", map[string]string{"UARTLOG_MIN_LENGTH": "512"}, uartlog.ErrInvalidConfig},
		{"unknown backend", map[string]string{"UARTLOG_BACKEND": "usb"}, uartlog.ErrInvalidConfig},
		{"bad read timeout", map[string]string{"UARTLOG_READ_TIMEOUT": "150ms"}, uartlog.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			_, err := Load(New())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
