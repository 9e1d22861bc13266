package wire

import (
	"encoding/json"
	"strings"
)

// Frame type discriminators for outbound messages.
const (
	TypeInit           = "init"
	TypeOpponentJoined = "opponent_joined"
	TypeUpdate         = "update"
	TypeWin            = "win"
	TypeDraw           = "draw"
	TypeError          = "error"
)

// Init is sent once to a player right after the upgrade completes.
type Init struct {
	Type      string  `json:"type"`
	FEN       string  `json:"fen"`
	TurnWhite bool    `json:"turn_white"`
	YourColor string  `json:"your_color"`
	Opponent  *string `json:"opponent"`
}

// OpponentJoined notifies the waiting player that the empty seat was claimed.
type OpponentJoined struct {
	Type     string `json:"type"`
	Opponent string `json:"opponent"`
}

// Update carries the new position after a non-terminal accepted move.
type Update struct {
	Type string `json:"type"`
	FEN  string `json:"fen"`
}

// Win ends the game decisively. Winner is set for on-board results,
// Reason for forced wins (opponent disconnected).
type Win struct {
	Type   string `json:"type"`
	Winner string `json:"winner,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Draw ends the game drawn.
type Draw struct {
	Type string `json:"type"`
}

// Error is sent to the offending sender only.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MoveCommand is the only recognised inbound frame: {"move":"<text>"}.
type MoveCommand struct {
	Move string `json:"move"`
}

func NewInit(fen string, turnWhite bool, yourColor, opponent string) Init {
	msg := Init{Type: TypeInit, FEN: fen, TurnWhite: turnWhite, YourColor: yourColor}
	if strings.TrimSpace(opponent) != "" {
		o := opponent
		msg.Opponent = &o
	}
	return msg
}

func NewOpponentJoined(opponent string) OpponentJoined {
	return OpponentJoined{Type: TypeOpponentJoined, Opponent: opponent}
}

func NewUpdate(fen string) Update { return Update{Type: TypeUpdate, FEN: fen} }

func NewWin(winner string) Win { return Win{Type: TypeWin, Winner: winner} }

func NewForcedWin(reason string) Win { return Win{Type: TypeWin, Reason: reason} }

func NewDraw() Draw { return Draw{Type: TypeDraw} }

func NewError(message string) Error { return Error{Type: TypeError, Message: message} }

// Encode marshals an outbound frame. The frame structs above cannot fail to
// marshal, so the error is dropped.
func Encode(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

// DecodeMove parses an inbound frame into a move command. Any other shape
// reports false; the caller ignores it without a reply.
func DecodeMove(data []byte) (string, bool) {
	var cmd MoveCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return "", false
	}
	move := strings.TrimSpace(cmd.Move)
	if move == "" {
		return "", false
	}
	return move, true
}
