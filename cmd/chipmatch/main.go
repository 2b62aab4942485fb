// Command chipmatch recommends, compares and searches processors from a
// specification catalog.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/HerbHall/chipmatch/internal/catalog"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitNoMatch = 1 // the query matched no processor
	ExitError   = 2 // configuration, dataset or usage error
)

func main() {
	if err := execute(os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr)); err != nil {
		fmt.Fprintln(os.Stderr, "chipmatch:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, catalog.ErrNotFound):
		return ExitNoMatch
	default:
		return ExitError
	}
}
