// Command perft counts the legal move tree below a position.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"chess-core/board"
	"chess-core/game"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("perft: ")

	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	copyMake := flag.Bool("copy", false, "Explore with position copies instead of make/undo")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	g, err := game.FromFEN(*fen)
	if err != nil {
		log.Fatalf("parse FEN: %v", err)
	}

	if *divide {
		var sum uint64
		for _, e := range g.Divide(*depth) {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
			sum += e.Nodes
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatalf("create cpuprofile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("start cpu profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	p := g.Position()
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if *copyMake {
			totalNodes += board.PerftCopy(p, *depth)
		} else {
			totalNodes += board.Perft(p, *depth)
		}
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatalf("create memprofile: %v", err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("write heap profile: %v", err)
		}
		_ = f.Close()
	}
}
