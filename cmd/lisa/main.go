// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/lisa/emulator"
	"github.com/ezrec/lisa/io"
	"github.com/ezrec/lisa/source"
	"github.com/ezrec/lisa/translate"
)

var f = translate.From

var errDefineSyntax = errors.New(f("expected NAME=VALUE"))

// define is a single -D NAME=VALUE setting.
type define struct {
	Name  string
	Value int64
}

// parseDefine parses a NAME=VALUE setting. VALUE accepts Go integer
// literal syntax (0x10, 0o20, 0b1000, 1_000).
func parseDefine(text string) (def define, err error) {
	name, value, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	if !ok || len(name) == 0 {
		err = fmt.Errorf("%q: %w", text, errDefineSyntax)
		return
	}

	def.Name = name
	def.Value, err = strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		err = fmt.Errorf("%q: %w", text, err)
		return
	}

	return
}

func main() {
	var input string
	var output string
	var verbose bool
	var defines []define

	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Define NAME=VALUE for $(...) expressions (repeatable)", func(text string) (err error) {
		def, err := parseDefine(text)
		if err != nil {
			return
		}
		defines = append(defines, def)
		return
	})

	flag.Parse()

	if flag.NArg() != 1 {
		atexit.Fatal(f("%v: expected a single program file, got %v", os.Args[0], flag.Args()))
	}

	path := flag.Arg(0)

	text, err := io.OsLoader{}.Load(path)
	if err != nil {
		atexit.Fatal(err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Diagnostics = os.Stderr

	for _, def := range defines {
		emu.Define(def.Name, def.Value)
	}

	err = emu.Load(source.Normalize(string(text)))
	if err != nil {
		atexit.Fatalf("%v: %v", path, err)
	}

	if input == "-" {
		emu.Tape.Input = bufio.NewReader(os.Stdin)
	} else {
		inf, err := os.Open(input)
		if err != nil {
			atexit.Fatalf("%v: %v", input, err)
		}
		atexit.Register(func() { inf.Close() })
		emu.Tape.Input = bufio.NewReader(inf)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
	}

	wr := bufio.NewWriter(ouf)
	atexit.Register(func() {
		wr.Flush()
		if ouf != os.Stdout {
			ouf.Close()
		}
	})
	emu.Tape.Output = wr

	emu.Reset()

	if verbose {
		for name, value := range emu.Defines() {
			log.Printf("define: %v = %v", name, value)
		}
	}

	err = emu.Run()
	if err != nil {
		if verbose {
			log.Printf("halted at line %d (ip %04x), state:\n%v", emu.LineNo(), emu.Ip(), emu.Cpu)
		}
		atexit.Fatalf("%v: %v", path, err)
	}

	if verbose {
		log.Printf("%v: %d lines, %d errors reported", path, emu.Ticks(), emu.Reported)
	}

	atexit.Exit(0)
}
