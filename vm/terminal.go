package vm

import (
	"bufio"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is the console on stdin/stdout. It satisfies both Input and Output.
type Terminal struct {
	in     *os.File
	reader *bufio.Reader
	writer *bufio.Writer

	originalTerminalConfig unix.Termios
	raw                    bool
}

var (
	_ Input  = (*Terminal)(nil)
	_ Output = (*Terminal)(nil)
)

func NewTerminal(in, out *os.File) *Terminal {
	return &Terminal{
		in:     in,
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
	}
}

// Poll checks for a pending key with a zero timeout.
func (t *Terminal) Poll() bool {
	if t.reader.Buffered() > 0 {
		return true
	}
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n > 0
}

// ReadByte blocks until a key is available.
func (t *Terminal) ReadByte() (byte, error) {
	return t.reader.ReadByte()
}

func (t *Terminal) WriteByte(c byte) error {
	return t.writer.WriteByte(c)
}

func (t *Terminal) Flush() error {
	return t.writer.Flush()
}

// EnableRawMode turns off line buffering and echo. It does nothing when
// stdin is not a terminal.
func (t *Terminal) EnableRawMode() error {
	fd := t.in.Fd()
	if t.raw || !term.IsTerminal(int(fd)) {
		return nil
	}
	if err := termios.Tcgetattr(fd, &t.originalTerminalConfig); err != nil {
		return err
	}
	newTermios := t.originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(fd, termios.TCSANOW, &newTermios); err != nil {
		return err
	}
	t.raw = true
	return nil
}

// DisableRawMode restores the settings saved by EnableRawMode.
func (t *Terminal) DisableRawMode() error {
	if !t.raw {
		return nil
	}
	t.raw = false
	return termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &t.originalTerminalConfig)
}
