// Command golox is a tree-walking interpreter for Lox.
package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/loxlang/golox/internal/golox"
)

func main() {
	c := golox.Cmd{}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
