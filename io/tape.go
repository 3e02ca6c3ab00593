package io

import (
	"errors"
	"io"
)

// Tape provides sequential I/O operations for reading and writing byte streams.
// It wraps an io.Reader for input and io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	BytesRead    int // Count of bytes received since Rewind.
	BytesWritten int // Count of bytes sent since Rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape, only the counters are cleared.
func (tc *Tape) Rewind() {
	tc.BytesRead = 0
	tc.BytesWritten = 0
}

// Receive reads the next byte of input.
// A missing input, or io.EOF, is the end of tape.
func (tc *Tape) Receive() (value byte, ok bool, err error) {
	if tc.Input == nil {
		return
	}

	var one [1]byte
	n, err := tc.Input.Read(one[:])
	for n == 0 && err == nil {
		n, err = tc.Input.Read(one[:])
	}
	if n == 0 {
		if errors.Is(err, io.EOF) {
			err = nil
		} else {
			err = errors.Join(ErrChannelRead, err)
		}
		return
	}
	err = nil

	tc.BytesRead++
	value = one[0]
	ok = true
	return
}

// Send writes a byte to the output stream.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	tc.BytesWritten++
	return
}
