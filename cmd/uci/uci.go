package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"chess-core/board"
	"chess-core/game"
	"chess-core/pgn"
)

type session struct {
	g   *game.Game
	out io.Writer
}

func uciLoop(in io.Reader, out io.Writer) error {
	s := &session{g: game.New(), out: out}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		if !s.handle(tokens) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *session) println(a ...any) { fmt.Fprintln(s.out, a...) }

// handle runs one command. It returns false on quit.
func (s *session) handle(tokens []string) bool {
	switch strings.ToLower(tokens[0]) {
	case "uci":
		s.println("id name chess-core")
		s.println("id author chess-core authors")
		s.println("uciok")
	case "isready":
		s.println("readyok")
	case "ucinewgame":
		s.g = game.New()
	case "position":
		s.position(tokens[1:])
	case "go":
		s.goCmd(tokens[1:])
	case "d":
		s.display()
	case "undo":
		if m, ok := s.g.UndoLastMove(); ok {
			s.println("info string undid", m)
		} else {
			s.println("info string no move to undo")
		}
	case "moves":
		s.moves()
	case "quit":
		return false
	default:
		s.println("info string Unknown command", tokens[0])
	}
	return true
}

// position handles "position startpos|fen <fen> [moves m1 m2 ...]". The
// current game is only replaced when the whole command is valid.
func (s *session) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var g *game.Game
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		g = game.New()
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		if i == 0 {
			s.println("info string Invalid fen position")
			return
		}
		var err error
		if g, err = game.FromFEN(strings.Join(rest[:i], " ")); err != nil {
			s.println("info string", err)
			return
		}
		rest = rest[i:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, mv := range rest[1:] {
			if _, err := g.PlayUCI(strings.ToLower(mv)); err != nil {
				s.println("info string Move", mv, "not played:", err)
				return
			}
		}
	}
	s.g = g
}

func (s *session) goCmd(args []string) {
	if len(args) < 2 || strings.ToLower(args[0]) != "perft" {
		s.println("info string only \"go perft <depth>\" is supported")
		return
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth < 1 {
		s.println("info string Malformed go perft depth", args[1])
		return
	}
	start := time.Now()
	var total uint64
	for _, e := range s.g.Divide(depth) {
		fmt.Fprintf(s.out, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	s.println()
	s.println("Nodes searched:", total)
	s.println("info string time", time.Since(start).Milliseconds(), "ms")
}

func (s *session) display() {
	p := s.g.Position()
	fmt.Fprint(s.out, p.String())
	s.println()
	s.println("Fen:", p.FEN())
	fmt.Fprintf(s.out, "Key: %016X\n", p.Hash())
	checkers := make([]string, 0, 2)
	for _, sq := range p.Checkers().Squares() {
		checkers = append(checkers, sq.String())
	}
	s.println("Checkers:", strings.Join(checkers, " "))
	if st := s.g.Status(); st.Over() {
		s.println("Status:", st)
	}
}

func (s *session) moves() {
	p := s.g.Position()
	legal := p.LegalMoves()
	uci := make([]string, len(legal))
	san := make([]string, len(legal))
	for i, m := range legal {
		uci[i] = m.String()
		san[i] = pgn.EncodeSAN(p, m)
	}
	s.println(strings.Join(uci, " "))
	s.println(strings.Join(san, " "))
	s.println("info string", len(legal), "legal moves,", countCaptures(p), "captures")
}

func countCaptures(p *board.Position) int {
	var buf [256]board.Move
	return len(p.GenerateCaptures(buf[:0]))
}
