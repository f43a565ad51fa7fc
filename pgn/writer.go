package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chess-core/board"
	"chess-core/game"
)

const lineWidth = 80

// Write writes g as one PGN game. Tags are written in md's order. A Result tag
// is added when missing, and SetUp/FEN tags when the game does not start from
// the standard position. The termination token is the decided result for a
// finished game, otherwise md's Result or "*".
func Write(w io.Writer, md Metadata, g *game.Game) error {
	bw := bufio.NewWriter(w)

	result := gameResult(md, g)
	md.tags = append([]Tag(nil), md.tags...)
	md.Set("Result", result)
	initial := g.InitialPosition()
	if fen := initial.FEN(); fen != board.StartFEN {
		md.Set("SetUp", "1")
		md.Set("FEN", fen)
	}
	for _, t := range md.tags {
		fmt.Fprintf(bw, "[%s \"%s\"]\n", t.Name, escapeTagValue(t.Value))
	}
	bw.WriteByte('\n')

	col := 0
	emit := func(tok string) {
		if col > 0 && col+1+len(tok) > lineWidth {
			bw.WriteByte('\n')
			col = 0
		}
		if col > 0 {
			bw.WriteByte(' ')
			col++
		}
		bw.WriteString(tok)
		col += len(tok)
	}

	pos := initial
	moveNum := pos.FullmoveNumber()
	for i, m := range g.Moves() {
		switch {
		case pos.SideToMove() == board.White:
			emit(strconv.Itoa(moveNum) + ".")
		case i == 0:
			emit(strconv.Itoa(moveNum) + "...")
		}
		emit(EncodeSAN(pos, m))
		if pos.SideToMove() == board.Black {
			moveNum++
		}
		pos.MakeMove(m)
	}
	emit(result)
	bw.WriteString("\n\n")
	return bw.Flush()
}

func gameResult(md Metadata, g *game.Game) string {
	switch g.Status() {
	case game.Checkmate:
		if g.SideToMove() == board.White {
			return "0-1"
		}
		return "1-0"
	case game.Stalemate, game.FiftyMoveDraw, game.ThreefoldRepetition:
		return "1/2-1/2"
	}
	if r, ok := md.Get("Result"); ok && isResult(r) {
		return r
	}
	return "*"
}

func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
