package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/allbin/uartlog"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uartlog.yaml")
	if err := os.WriteFile(path, []byte("device: /dev/ttyS1\nbaud: 57600\n"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCfgFile := cfgFile
	cfgFile = path
	t.Cleanup(func() {
		cfgFile = oldCfgFile
		rootCmd.Flags().Set("baud", "115200")
		rootCmd.Flags().Lookup("baud").Changed = false
	})

	if err := rootCmd.Flags().Set("baud", "9600"); err != nil {
		t.Fatal(err)
	}

	c, err := loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if c.Device != "/dev/ttyS1" {
		t.Errorf("Device = %q, want /dev/ttyS1 from the config file", c.Device)
	}
	if c.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600 from the flag", c.BaudRate)
	}
	if c.LogFile != uartlog.DefaultLogFile {
		t.Errorf("LogFile = %q, want default %q", c.LogFile, uartlog.DefaultLogFile)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	oldCfgFile := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = oldCfgFile })

	if _, err := loadConfig(rootCmd); err == nil {
		t.Error("loadConfig() with a missing config file succeeded")
	}
}
