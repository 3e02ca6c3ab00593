// Package io provides the byte level I/O collaborators of the interpreter:
// the console tape used by GET, OUT and OSR, and the file loader used by
// LOD and by the command line front end.
package io

// Channel defines the interface for the interpreter's console.
// Channels operate at the byte level.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive reads a single byte, ok is false at end of input.
	// A failed read is not end of input, and is returned as err.
	Receive() (value byte, ok bool, err error)
	// Send writes a single byte to the channel.
	Send(value byte) error
}
