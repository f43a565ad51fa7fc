// Command uci runs a line-based protocol shell over the move generator.
// It understands the UCI handshake and position commands plus a few
// debugging commands (perft, board display, undo, move listing). Move search
// is not implemented.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("uci: ")
	if err := uciLoop(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
