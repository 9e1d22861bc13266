package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN = "k7/8/1Q6/8/8/8/8/7K b - - 0 1"
)

func TestInitialPositionIsPlayable(t *testing.T) {
	e := NewStdEngine()

	require.NoError(t, e.ParsePosition(e.InitialFEN()))

	clock, err := e.HalfmoveClock(e.InitialFEN())
	require.NoError(t, err)
	assert.Equal(t, 0, clock)

	verdict, err := e.ClassifyOutcome(e.InitialFEN())
	require.NoError(t, err)
	assert.Equal(t, KindNone, verdict.Kind)
}

func TestApplyMoveAdvancesPosition(t *testing.T) {
	e := NewStdEngine()

	next, err := e.ApplyMove(e.InitialFEN(), "e4")
	require.NoError(t, err)
	require.NotEqual(t, e.InitialFEN(), next)

	fields := strings.Fields(next)
	require.Len(t, fields, 6)
	assert.Equal(t, "b", fields[1], "side to move must flip")
	assert.Equal(t, "0", fields[4], "pawn move resets the halfmove clock")

	require.NoError(t, e.ParsePosition(next))

	// leading/trailing whitespace around the move text is tolerated
	trimmed, err := e.ApplyMove(e.InitialFEN(), "  e4  ")
	require.NoError(t, err)
	assert.Equal(t, next, trimmed)
}

func TestApplyMoveErrorTaxonomy(t *testing.T) {
	e := NewStdEngine()

	_, err := e.ApplyMove(e.InitialFEN(), "hello world")
	assert.ErrorIs(t, err, ErrInvalidSAN)

	_, err = e.ApplyMove(e.InitialFEN(), "")
	assert.ErrorIs(t, err, ErrInvalidSAN)

	// well-formed SAN, but the king cannot reach e5 from the start
	_, err = e.ApplyMove(e.InitialFEN(), "Ke5")
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = e.ApplyMove("not a position", "e4")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestClassifyOutcomeCheckmate(t *testing.T) {
	e := NewStdEngine()

	verdict, err := e.ClassifyOutcome(foolsMateFEN)
	require.NoError(t, err)
	assert.Equal(t, KindDecisive, verdict.Kind)
	assert.Equal(t, Black, verdict.Winner)
	assert.Equal(t, "checkmate", verdict.Method)
}

func TestClassifyOutcomeStalemate(t *testing.T) {
	e := NewStdEngine()

	verdict, err := e.ClassifyOutcome(stalemateFEN)
	require.NoError(t, err)
	assert.Equal(t, KindDrawn, verdict.Kind)
	assert.Empty(t, verdict.Winner)
}

func TestCanonicalKeyIgnoresMoveCounters(t *testing.T) {
	e := NewStdEngine()

	a, err := e.CanonicalKey("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	b, err := e.CanonicalKey("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 37 90")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := e.CanonicalKey("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "side to move is part of the key")

	_, err = e.CanonicalKey("too few fields")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestHalfmoveClockParsing(t *testing.T) {
	e := NewStdEngine()

	clock, err := e.HalfmoveClock("8/8/8/8/8/8/k7/K7 w - - 42 120")
	require.NoError(t, err)
	assert.Equal(t, 42, clock)

	_, err = e.HalfmoveClock("8/8/8/8/8/8/k7/K7 w - - nope 120")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}
