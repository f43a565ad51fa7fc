package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"chess-core/export"
)

const games = `[Event "mate"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0

[Event "bad"]

1. e4 e4 *

[Event "unfinished"]

1. d4 *

[Event "draw"]
[Result "1/2-1/2"]

1. e4 f5 2. Qh5+ g6 1/2-1/2
`

func TestConvert(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	var buf bytes.Buffer
	st, err := convert(strings.NewReader(games), &buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if st.games != 2 || st.skipped != 2 || st.records != 7+3 {
		t.Fatalf("stats %+v", st)
	}
	if buf.Len() != st.records*export.RecordSize {
		t.Fatalf("wrote %d bytes for %d records", buf.Len(), st.records)
	}

	var last export.Record
	for i := 0; i < st.records; i++ {
		if last, err = export.ReadRecord(&buf); err != nil {
			t.Fatal(err)
		}
		if i < 7 && last.WDL != 1 {
			t.Fatalf("record %d wdl %v want 1", i, last.WDL)
		}
	}
	if last.WDL != 0.5 {
		t.Fatalf("draw record wdl %v", last.WDL)
	}
}

func TestConvertMax(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	var buf bytes.Buffer
	st, err := convert(strings.NewReader(games), &buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if st.games != 1 || st.records != 7 {
		t.Fatalf("stats %+v", st)
	}
}
