// Command export converts PGN games into binary training records, one record
// per position played from, labelled with the game result.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"chess-core/export"
	"chess-core/pgn"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("export: ")

	input := flag.String("in", "", "Input PGN file")
	output := flag.String("out", "", "Output binary file")
	maxGames := flag.Int("max", 0, "Maximum games to convert (0 = all)")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Println("Usage: export -in <games.pgn> -out <records.bin>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}
	in, err := os.Open(*input)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()
	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}

	bw := bufio.NewWriter(out)
	st, err := convert(in, bw, *maxGames)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("conversion failed: %v", err)
	}
	log.Printf("%d games, %d skipped, %d records (%.2f MB)",
		st.games, st.skipped, st.records, float64(st.records*export.RecordSize)/(1024*1024))
}

type stats struct {
	games   int
	skipped int
	records int
}

// convert reads games from r and writes their records to w. Games that fail to
// parse or have no decided result are logged and skipped.
func convert(r io.Reader, w io.Writer, maxGames int) (stats, error) {
	var st stats
	pr := pgn.NewReader(r)
	for maxGames <= 0 || st.games < maxGames {
		rec, err := pr.Next()
		if err == io.EOF {
			break
		}
		var ge *pgn.GameError
		if errors.As(err, &ge) {
			log.Printf("skipping %v", ge)
			st.skipped++
			continue
		}
		if err != nil {
			return st, err
		}
		wdl, ok := export.ResultWDL(rec.Result)
		if !ok {
			st.skipped++
			continue
		}
		n, err := export.WriteGame(w, rec.Game, wdl)
		st.records += n
		if err != nil {
			return st, err
		}
		st.games++
		if st.games%1000 == 0 {
			log.Printf("converted %d games, %d records", st.games, st.records)
		}
	}
	return st, nil
}
