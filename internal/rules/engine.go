package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

const startingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// sanShape accepts well-formed SAN move text (piece moves, pawn moves,
// promotions, castling) without judging legality.
var sanShape = regexp.MustCompile(`^(O-O(-O)?|[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](=[QRBN])?)[+#]?$`)

// StdEngine implements Engine on top of corentings/chess.
type StdEngine struct{}

func NewStdEngine() *StdEngine { return &StdEngine{} }

func (e *StdEngine) InitialFEN() string { return startingFEN }

func (e *StdEngine) ParsePosition(fen string) error {
	_, err := gameFromFEN(fen)
	return err
}

func (e *StdEngine) ApplyMove(fen, moveText string) (string, error) {
	game, err := gameFromFEN(fen)
	if err != nil {
		return "", err
	}
	moveText = strings.TrimSpace(moveText)
	if !sanShape.MatchString(moveText) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSAN, moveText)
	}
	if err := game.PushNotationMove(moveText, nchess.AlgebraicNotation{}, nil); err != nil {
		return "", fmt.Errorf("%w: %q", ErrIllegalMove, moveText)
	}
	return game.FEN(), nil
}

func (e *StdEngine) ClassifyOutcome(fen string) (Verdict, error) {
	game, err := gameFromFEN(fen)
	if err != nil {
		return Verdict{}, err
	}
	method := strings.ToLower(game.Method().String())
	switch game.Outcome() {
	case nchess.WhiteWon:
		return Verdict{Kind: KindDecisive, Winner: White, Method: method}, nil
	case nchess.BlackWon:
		return Verdict{Kind: KindDecisive, Winner: Black, Method: method}, nil
	case nchess.Draw:
		return Verdict{Kind: KindDrawn, Method: method}, nil
	default:
		return Verdict{Kind: KindNone}, nil
	}
}

func (e *StdEngine) CanonicalKey(fen string) (string, error) {
	fields, err := fenFields(fen)
	if err != nil {
		return "", err
	}
	return strings.Join(fields[:4], " "), nil
}

func (e *StdEngine) HalfmoveClock(fen string) (int, error) {
	fields, err := fenFields(fen)
	if err != nil {
		return 0, err
	}
	clock, err := strconv.Atoi(fields[4])
	if err != nil || clock < 0 {
		return 0, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidPosition, fields[4])
	}
	return clock, nil
}

func gameFromFEN(fen string) (*nchess.Game, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return nil, fmt.Errorf("%w: empty fen", ErrInvalidPosition)
	}
	option, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, fen)
	}
	return nchess.NewGame(option), nil
}

func fenFields(fen string) ([]string, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fen fields, got %d", ErrInvalidPosition, len(fields))
	}
	return fields, nil
}
