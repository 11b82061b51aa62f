// Package uartlog receives a single message from a serial (UART) device,
// appends it to a log file and echoes the bytes back over the same line.
//
// The port is put into raw 8N1 mode with no flow control. Reads use VMIN=0
// and VTIME from the configured read timeout, so a read returns as soon as
// any byte is available or after the timeout with nothing.
//
// # Basic Usage
//
// Run the whole pipeline with the defaults (/dev/ttyO1 at 115200, log file
// /home/debian/rms/tokenfile.txt):
//
//	res, err := uartlog.Run(ctx, uartlog.DefaultSettings(), nil)
//	if err != nil {
//	    os.Exit(uartlog.ExitCode(err))
//	}
//	fmt.Printf("%d bytes: %s\n", res.Bytes, res.Text)
//
// # Receive Loop
//
// A read shorter than MinLength (142 bytes by default) is treated as a
// partial message: pending input is flushed and the loop retries after
// Backoff. A read that times out with zero bytes retries without flushing.
//
//	port, err := uartlog.Open("/dev/ttyUSB0", uartlog.WithBaudRate(9600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	r := uartlog.NewReceiver(port)
//	r.MaxAttempts = 30
//	buf := uartlog.NewBuffer(uartlog.DefaultBufferSize)
//	n, err := r.Receive(ctx, buf)
//
// # Errors
//
// Terminal attribute failures are *ConfigError, flush failures *FlushError,
// read failures *ReadError, log file failures *JournalError and echo
// failures *WriteError. All of them map to exit status 1 through ExitCode.
//
// # Backends
//
// Open drives the tty with termios ioctls directly. OpenPortable goes through
// go.bug.st/serial and is selected with Settings.Backend = "portable".
package uartlog
