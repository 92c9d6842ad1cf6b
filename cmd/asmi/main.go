// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tebeka/atexit"

	"github.com/ezrec/asmi/cpu"
	"github.com/ezrec/asmi/emulator"
	"github.com/ezrec/asmi/internal/logger"
)

// options for a single program run.
type options struct {
	verbose   bool
	simple    bool
	dump      bool
	steps     int
	predefine []string
}

// run assembles and runs one program, writing its output (or, for the
// simple dialect, its registers) to w.
func (opt *options) run(input io.Reader, w io.Writer) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opt.verbose
	emu.MaxSteps = opt.steps

	for _, def := range opt.predefine {
		reg, expr, ok := strings.Cut(def, "=")
		if !ok {
			err = fmt.Errorf("-D %v: expected reg=expr", def)
			return
		}
		err = emu.Predefine(strings.TrimSpace(reg), expr)
		if err != nil {
			return
		}
	}

	dialect := cpu.DIALECT_FULL
	if opt.simple {
		dialect = cpu.DIALECT_SIMPLE
	}

	err = emu.Load(input, dialect)
	if err != nil {
		return
	}

	if opt.dump {
		defer emu.Dump(w)
	}

	if opt.simple {
		err = emu.Execute()
		if err != nil {
			return
		}
		for name, value := range emu.Cpu.Register.All() {
			fmt.Fprintf(w, "%v=%v\n", name, value)
		}
		return
	}

	output, err := emu.Run()
	if err != nil {
		return
	}

	fmt.Fprintln(w, output)

	return
}

// runFile runs a program file, or standard input for "-".
func runFile(opt *options, file string, w io.Writer) (err error) {
	if file == "-" {
		return opt.run(os.Stdin, w)
	}

	inf, err := os.Open(file)
	if err != nil {
		return
	}
	defer inf.Close()

	return opt.run(inf, w)
}

// runFiles runs each file in turn. w is flushed after every program, so
// its output lands ahead of any error logged for the next one.
func runFiles(opt *options, files []string, w *bufio.Writer) (status int) {
	for _, file := range files {
		err := runFile(opt, file, w)
		w.Flush()
		if err != nil {
			log.Error("run", "file", file, "err", err)
			status = 1
		}
	}

	return
}

func main() {
	opt := &options{}
	var noColor bool

	flag.BoolVar(&opt.verbose, "v", false, "Verbose mode")
	flag.BoolVar(&noColor, "n", false, "No color")
	flag.BoolVar(&opt.simple, "s", false, "Simple dialect (mov, inc, dec, jnz); print registers")
	flag.BoolVar(&opt.dump, "r", false, "Dump registers after the run")
	flag.IntVar(&opt.steps, "steps", 10_000_000, "Instruction limit per program, 0 for none")
	flag.Func("D", "Predefine a register as reg=expr (repeatable)", func(def string) error {
		opt.predefine = append(opt.predefine, def)
		return nil
	})

	flag.Parse()

	logger.Init(os.Stderr, opt.verbose, noColor)

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	atexit.Exit(runFiles(opt, files, stdout))
}
