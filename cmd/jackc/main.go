// Command jackc compiles Jack source files into Hack VM assembly text.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nand2tetris/jackc/internal/compiler"
)

var path = flag.String("path", ".", "a .jack file or a directory of .jack files to compile")

func main() {
	flag.Parse()
	if err := compiler.Compile(*path); err != nil {
		fmt.Fprintf(os.Stderr, "jackc: %v\n", err)
		os.Exit(1)
	}
}
