package log

import (
	"fmt"
	"io"
	"os"
)

// ConsoleOutput writes formatted entries to stderr, one per line.
type ConsoleOutput struct{}

// NewConsoleOutput creates a ConsoleOutput.
func NewConsoleOutput() *ConsoleOutput { return &ConsoleOutput{} }

func (c *ConsoleOutput) Write(_ *Entry, formatted []byte) error {
	_, err := fmt.Fprintln(os.Stderr, string(formatted))
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// WriterOutput writes formatted entries to an arbitrary io.Writer, for
// example a log file opened by the CLI.
type WriterOutput struct {
	w      io.Writer
	closer io.Closer
}

// NewWriterOutput wraps w. If w also implements io.Closer, Close will
// close it.
func NewWriterOutput(w io.Writer) *WriterOutput {
	out := &WriterOutput{w: w}
	if c, ok := w.(io.Closer); ok {
		out.closer = c
	}
	return out
}

func (o *WriterOutput) Write(_ *Entry, formatted []byte) error {
	_, err := fmt.Fprintln(o.w, string(formatted))
	return err
}

func (o *WriterOutput) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// NullOutput discards everything; used for NewNop().
type NullOutput struct{}

// NewNullOutput creates a NullOutput.
func NewNullOutput() *NullOutput { return &NullOutput{} }

func (NullOutput) Write(*Entry, []byte) error { return nil }
func (NullOutput) Close() error               { return nil }
