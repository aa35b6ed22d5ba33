// Command exprcore inspects and exercises the operator layer: it lists the
// registered operators and functions, applies them to literal arguments, and
// manages persisted module data.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
