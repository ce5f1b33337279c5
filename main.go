// main.go
//
// letterboxed checks a Letter Boxed solution.
//
//	letterboxed BOARD DICTIONARY < words
//	letterboxed serve BOARD DICTIONARY [--addr :5175]
//
// BOARD holds one side per line, DICTIONARY one word per line; candidate
// words are read from stdin, one per line. A single verdict line is printed
// to stdout.
//
// Exit status:
//
//	0  a verdict was printed (including rule violations)
//	1  the board is invalid, or an input could not be read
//	2  wrong number of arguments or bad flags
package main

import (
	"os"

	"github.com/robalobadob/letterboxed/internal/config"
)

func main() {
	os.Exit(run(config.Load(), os.Args[1:], os.Stdin, os.Stdout))
}
