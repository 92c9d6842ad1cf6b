package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init configures the default logger. Debug enables the verbose traces
// of the assembler and cpu.
func Init(w io.Writer, debug, noColor bool) {
	if w == nil {
		w = os.Stderr
	}

	log.SetDefault(log.NewWithOptions(w,
		log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "ASMI",
		}))

	log.SetLevel(log.WarnLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
