package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/vvka-141/babynames/internal/cli"
	"github.com/vvka-141/babynames/pkg/babynames"
)

func main() {
	os.Exit(run(os.Stdout))
}

// run executes the CLI and returns the process exit code. Panics are
// reported on out with a stack trace, like every other diagnostic.
func run(out io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(out, "panic: %v\n%s\n", r, debug.Stack())
			code = babynames.ExitPanic
		}
	}()

	if os.Getenv("BABYNAMES_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		return babynames.ExitCodeForError(err)
	}
	return babynames.ExitSuccess
}
