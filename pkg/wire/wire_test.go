package wire

import (
	"encoding/json"
	"testing"
)

func TestDecodeMove(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain move", `{"move":"e4"}`, "e4", true},
		{"padded move", `{"move":"  Nf3 "}`, "Nf3", true},
		{"extra fields tolerated", `{"move":"e4","extra":1}`, "e4", true},
		{"empty move", `{"move":""}`, "", false},
		{"whitespace move", `{"move":"   "}`, "", false},
		{"missing key", `{"other":"e4"}`, "", false},
		{"wrong type", `{"move":42}`, "", false},
		{"not json", `e4`, "", false},
		{"empty input", ``, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DecodeMove([]byte(tc.in))
			if ok != tc.ok || got != tc.want {
				t.Fatalf("DecodeMove(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestInitOpponentNullWhileWaiting(t *testing.T) {
	raw := Encode(NewInit("startpos", true, "white", ""))

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, present := m["opponent"]
	if !present || v != nil {
		t.Fatalf("opponent must serialise as explicit null, got %v (present=%v)", v, present)
	}
	if m["type"] != TypeInit || m["your_color"] != "white" || m["turn_white"] != true {
		t.Fatalf("unexpected init frame: %v", m)
	}
}

func TestInitOpponentSetWhenSeated(t *testing.T) {
	raw := Encode(NewInit("startpos", false, "black", "alice"))

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["opponent"] != "alice" || m["your_color"] != "black" {
		t.Fatalf("unexpected init frame: %v", m)
	}
}

func TestWinFrameShapes(t *testing.T) {
	var onBoard map[string]any
	if err := json.Unmarshal(Encode(NewWin("alice")), &onBoard); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if onBoard["winner"] != "alice" {
		t.Fatalf("unexpected win frame: %v", onBoard)
	}
	if _, present := onBoard["reason"]; present {
		t.Fatalf("on-board win must omit reason: %v", onBoard)
	}

	var forced map[string]any
	if err := json.Unmarshal(Encode(NewForcedWin("opponent disconnected")), &forced); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if forced["reason"] != "opponent disconnected" {
		t.Fatalf("unexpected forced win: %v", forced)
	}
	if _, present := forced["winner"]; present {
		t.Fatalf("forced win must omit winner: %v", forced)
	}
}
