package pgn

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"chess-core/game"
)

// Record is one game read from a PGN stream.
type Record struct {
	Metadata Metadata
	Game     *game.Game
	// Result is the movetext termination token ("1-0", "0-1", "1/2-1/2" or "*"),
	// or the Result tag when the movetext has none.
	Result string
}

// Reader reads consecutive games from a PGN stream.
type Reader struct {
	sc      *bufio.Scanner
	line    int
	pending *string
	gameNum int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{sc: sc}
}

func (r *Reader) readLine() (string, bool) {
	if r.pending != nil {
		s := *r.pending
		r.pending = nil
		return s, true
	}
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), true
}

func (r *Reader) unread(s string) { r.pending = &s }

// Next reads the next game. It returns io.EOF when the stream is exhausted.
// A game whose movetext cannot be resolved yields a *GameError; the reader has
// already consumed that game, so calling Next again continues with the following one.
func (r *Reader) Next() (*Record, error) {
	var md Metadata
	var movetext strings.Builder
	inMoves := false
	tagsDone := false
	startLine := 0

	for {
		line, ok := r.readLine()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if inMoves {
				break
			}
			tagsDone = md.Len() > 0
			continue
		}
		if startLine == 0 {
			startLine = r.line
		}
		if trimmed[0] == '[' && tagsDone {
			// a header block with no movetext is a game of its own
			r.unread(line)
			break
		}
		if trimmed[0] == '[' && !inMoves {
			if name, value, ok := parseTagPair(trimmed); ok {
				md.Set(name, value)
			}
			continue
		}
		if trimmed[0] == '[' && inMoves {
			// next game's header without a separating blank line
			r.unread(line)
			break
		}
		// '%' escape lines are ignored
		if trimmed[0] == '%' {
			continue
		}
		inMoves = true
		movetext.WriteString(line)
		movetext.WriteByte('\n')
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	if startLine == 0 {
		return nil, io.EOF
	}

	r.gameNum++
	rec, err := buildRecord(md, movetext.String())
	if err != nil {
		var ge *GameError
		if errors.As(err, &ge) {
			ge.GameNum = r.gameNum
			ge.Line = startLine
			return nil, ge
		}
		return nil, &GameError{Err: err, GameNum: r.gameNum, Line: startLine}
	}
	return rec, nil
}

// ReadAll reads every game from r. Games that fail to parse are skipped and
// their errors collected.
func ReadAll(r io.Reader) ([]*Record, []error) {
	pr := NewReader(r)
	var recs []*Record
	var errs []error
	for {
		rec, err := pr.Next()
		if err == io.EOF {
			return recs, errs
		}
		if err != nil {
			var ge *GameError
			if !errors.As(err, &ge) {
				return recs, append(errs, err)
			}
			errs = append(errs, err)
			continue
		}
		recs = append(recs, rec)
	}
}

// parseTagPair accepts `[Name "Value"]`. Malformed lines report ok=false.
func parseTagPair(line string) (name, value string, ok bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", "", false
	}
	body := strings.TrimSpace(line[1 : len(line)-1])
	i := 0
	for i < len(body) && isTagNameChar(body[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	name = body[:i]
	rest := strings.TrimSpace(body[i:])
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", "", false
	}
	raw := rest[1 : len(rest)-1]
	var sb strings.Builder
	for j := 0; j < len(raw); j++ {
		if raw[j] == '\\' && j+1 < len(raw) {
			j++
		}
		sb.WriteByte(raw[j])
	}
	return name, sb.String(), true
}

func isTagNameChar(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

func buildRecord(md Metadata, movetext string) (*Record, error) {
	initial, err := md.InitialPosition()
	if err != nil {
		return nil, &GameError{Err: err}
	}
	g := game.FromPosition(initial)
	pos := g.Position()
	rec := &Record{Metadata: md, Game: g}

	tokens, result := tokenize(movetext)
	for i, tok := range tokens {
		m, err := ParseSAN(pos, tok)
		if err != nil {
			return nil, &GameError{Err: err, PlyNum: i + 1, MoveText: tok}
		}
		if err := g.Play(m); err != nil {
			return nil, &GameError{Err: err, PlyNum: i + 1, MoveText: tok}
		}
		pos.MakeMove(m)
	}
	if result == "" {
		result, _ = md.Get("Result")
	}
	if result == "" {
		result = "*"
	}
	rec.Result = result
	return rec, nil
}

func isResult(tok string) bool {
	switch tok {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}

// tokenize strips comments, variations, NAGs, move numbers and the result
// from movetext and returns the SAN tokens of the main line.
func tokenize(text string) (tokens []string, result string) {
	depth := 0
	i := 0
	for i < len(text) {
		ch := text[i]
		switch {
		case ch == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return tokens, result
			}
			i += end + 1
			continue
		case ch == ';':
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				return tokens, result
			}
			i += end + 1
			continue
		case ch == '(':
			depth++
			i++
			continue
		case ch == ')':
			if depth > 0 {
				depth--
			}
			i++
			continue
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
			continue
		}

		start := i
		for i < len(text) && !strings.ContainsRune(" \t\r\n{};()", rune(text[i])) {
			i++
		}
		if depth > 0 {
			continue
		}
		tok := text[start:i]
		if tok[0] == '$' {
			continue
		}
		if isResult(tok) {
			result = tok
			continue
		}
		// "12." "12..." and "12.e4"
		j := 0
		for j < len(tok) && tok[j] >= '0' && tok[j] <= '9' {
			j++
		}
		if j > 0 && j < len(tok) && tok[j] == '.' {
			for j < len(tok) && tok[j] == '.' {
				j++
			}
			tok = tok[j:]
		}
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, result
}
