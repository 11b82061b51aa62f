/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/allbin/uartlog"
	"github.com/allbin/uartlog/internal/cfg"
	"github.com/allbin/uartlog/internal/logger"
	"github.com/allbin/uartlog/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	conf    *cfg.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uartlog",
	Short: "Receive one message from a UART, log it and echo it back",
	Long: `Receive a single message from a serial device, append it to a log file
and send the same bytes back over the line.

The port is opened in raw 8N1 mode. Reads shorter than --min-length bytes are
treated as partial messages: pending input is flushed and the read is retried
after --backoff. Reads that time out with no data are retried without flushing.

Settings are taken from flags, UARTLOG_* environment variables and the
uartlog.yaml config file, in that order of precedence.

Example usage:
  uartlog
  uartlog --device /dev/ttyUSB0 --baud 9600 --log-file ./tokens.txt
  uartlog --max-attempts 30 --hex
  uartlog --tui`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		conf = c

		return logger.Init(cmd.Context(), logger.Options{
			Level:       c.LogLevel,
			Verbosity:   c.Verbosity,
			LogFile:     c.DiagnosticLog,
			LogToStderr: true,
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		showTUI, _ := cmd.Flags().GetBool("tui")
		hexMode, _ := cmd.Flags().GetBool("hex")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var err error
		if showTUI {
			err = runReceiveTUI(ctx, conf.Settings, hexMode)
		} else {
			out := newConsole(cmd.OutOrStdout(), hexMode)
			_, err = uartlog.Run(ctx, conf.Settings, out.event)
		}
		if err != nil {
			exit(err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	logger.Shutdown()
	if err != nil {
		os.Exit(uartlog.ExitCode(err))
	}
}

// exit prints err the way cobra does and terminates with its exit code.
func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Shutdown()
	os.Exit(uartlog.ExitCode(err))
}

func init() {
	d := uartlog.DefaultSettings()

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "Config file (default: uartlog.yaml in /etc/uartlog or $HOME/.config/uartlog)")
	pf.Int("log-level", cfg.DefaultLogLevel, "Diagnostics level: 1 error, 2 warning, 3 info, 4 debug")
	pf.Int("verbosity", cfg.DefaultVerbosity, "Diagnostics verbosity for debug entries")
	pf.String("diagnostic-log", "", "Also write diagnostics to this file")

	f := rootCmd.Flags()
	f.StringP("device", "d", d.Device, "Serial device to read from")
	f.StringP("log-file", "l", d.LogFile, "File the received message is appended to")
	f.String("backend", d.Backend, "Port backend: termios, portable")
	f.IntP("baud", "b", d.BaudRate, "Baud rate")
	f.Duration("read-timeout", d.ReadTimeout, "Read timeout, a multiple of 100ms up to 25.5s")
	f.Int("buffer-size", d.BufferSize, "Receive buffer size in bytes")
	f.Int("min-length", d.MinLength, "Shortest read accepted as a complete message")
	f.Duration("backoff", d.Backoff, "Pause between read attempts")
	f.Int("max-attempts", d.MaxAttempts, "Give up after this many reads (0: never)")
	f.Duration("timeout", d.Timeout, "Give up after this long (0: never)")
	f.Bool("sync-writes", d.SyncWrites, "Enable synchronous writes (O_SYNC)")
	f.Bool("drain", d.Drain, "Wait until the echo has been transmitted before closing")
	f.Bool("tui", false, "Show a live receive view")
	f.BoolP("hex", "x", false, "Print the received message as HEX and ASCII")
}

func loadConfig(cmd *cobra.Command) (*cfg.Config, error) {
	v := cfg.New()
	if err := cfg.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.ReadFile(v, cfgFile); err != nil {
		return nil, err
	}
	return cfg.Load(v)
}

// runReceiveTUI runs the pipeline in the background while the receive view
// owns the terminal. Quitting the view cancels a pipeline still waiting for
// data.
func runReceiveTUI(ctx context.Context, settings uartlog.Settings, hexMode bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := models.NewReceiveModel(settings, hexMode, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen())

	done := make(chan error, 1)
	go func() {
		res, err := uartlog.Run(ctx, settings, func(e uartlog.Event) {
			p.Send(models.EventMsg{Event: e})
		})
		p.Send(models.DoneMsg{Result: res, Err: err})
		if ctx.Err() != nil {
			p.Quit()
		}
		done <- err
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("receive view: %w", err)
	}
	cancel()
	return <-done
}
