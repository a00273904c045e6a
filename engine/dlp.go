package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Trigger lines of the DLP-IO8-G box used by the session.
const (
	LineTarget   = "1" // high while the target image is on screen
	LinePrime    = "2" // pulsed at each prime onset
	LineResponse = "3" // pulsed when the participant reports the object
)

const (
	cmdPing   = 0x27
	cmdBinary = 0x5C
	pingReply = 'Q'
	pulseMS   = 5
)

// Lines 1-8 are raised with their digit and lowered with the key below it
// on a QWERTY keyboard.
var lowerLines = strings.NewReplacer(
	"1", "Q", "2", "W", "3", "E", "4", "R",
	"5", "T", "6", "Y", "7", "U", "8", "I",
)

// DLPIO8G drives the TTL outputs of a DLP-IO8-G over its serial port.
type DLPIO8G struct {
	port serial.Port
}

func NewDLPIO8G(device string, baudrate int) (*DLPIO8G, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}

	d := &DLPIO8G{port: port}
	if !d.Ping() {
		port.Close()
		return nil, errors.New("device did not respond to ping correctly")
	}
	if _, err := port.Write([]byte{cmdBinary}); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

func (d *DLPIO8G) Close() {
	if d != nil && d.port != nil {
		d.port.Close()
	}
}

func (d *DLPIO8G) Ping() bool {
	if _, err := d.port.Write([]byte{cmdPing}); err != nil {
		return false
	}
	buf := make([]byte, 1)
	n, err := d.port.Read(buf)
	return err == nil && n == 1 && buf[0] == pingReply
}

// Set raises the given lines. A nil device ignores the call so sessions
// without a trigger box need no checks.
func (d *DLPIO8G) Set(lines string) error {
	if d == nil {
		return nil
	}
	_, err := d.port.Write([]byte(lines))
	return err
}

func (d *DLPIO8G) Unset(lines string) error {
	if d == nil {
		return nil
	}
	_, err := d.port.Write([]byte(lowerLines.Replace(lines)))
	return err
}

// Pulse raises lines for a few milliseconds.
func (d *DLPIO8G) Pulse(lines string) error {
	if d == nil {
		return nil
	}
	if err := d.Set(lines); err != nil {
		return err
	}
	time.Sleep(pulseMS * time.Millisecond)
	return d.Unset(lines)
}
