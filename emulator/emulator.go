// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/lisa/cpu"
	"github.com/ezrec/lisa/io"
	"github.com/ezrec/lisa/translate"
)

// Emulator state. CPU + program + IO collaborators.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.

	Tape  io.Tape   // Console IO channel.
	Files io.Loader // File collaborator for LOD.

	Diagnostics goio.Writer // Destination of recoverable error reports.
	Reported    int         // Count of recoverable errors reported.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
		Files:   io.OsLoader{},
	}

	emu.Cpu = cpu.NewCpu(emu.Program)

	return
}

// Defines returns an iterator over all of the expression constants.
func (emu *Emulator) Defines() iter.Seq2[string, int64] {
	return maps.All(emu.Cpu.Expressions.Equate)
}

// Define sets a constant visible to $(...) expressions.
func (emu *Emulator) Define(name string, value int64) {
	emu.Cpu.Expressions.Define(name, value)
}

// Load assembles a normalized program text, and makes it the current
// program.
func (emu *Emulator) Load(text string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(text)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the emulator state, ready to run the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Console = &emu.Tape
	emu.Cpu.Loader = emu.Files

	emu.Cpu.Reset()

	emu.Reported = 0

	if emu.Verbose {
		log.Printf("emulator: %d bytes, %d subroutines, equates %v",
			len(emu.Program.Text), len(emu.Program.Labels), emu.Cpu.Expressions)
	}

	return
}

// Ticks returns the total lines dispatched since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns the current cursor.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// LineNo returns the line number of the next line to execute.
func (emu *Emulator) LineNo() int {
	return emu.Cpu.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run the program until the cursor reaches the end of the program, or a
// fatal error occurs. Recoverable errors are reported to Diagnostics, and
// the offending instruction is skipped.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if done {
			return
		}
		if err == nil {
			continue
		}
		if cpu.IsFatal(err) {
			return
		}
		emu.report(err)
		err = nil
	}
}

// report writes a recoverable error to Diagnostics.
func (emu *Emulator) report(err error) {
	emu.Reported++

	if emu.Diagnostics == nil {
		log.Print(err)
		return
	}

	translate.Fprintf(emu.Diagnostics, "%v\n", err)
}
