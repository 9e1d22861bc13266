package arena

import "testing"

func TestHandleSendAfterClose(t *testing.T) {
	h := NewHandle(1)
	if !h.Send([]byte("a")) {
		t.Fatalf("send to open handle failed")
	}
	h.Close()
	h.Close() // idempotent
	if h.Send([]byte("b")) {
		t.Fatalf("send to closed handle succeeded")
	}
	select {
	case <-h.Done():
	default:
		t.Fatalf("done channel not closed")
	}
}

func TestHandleSendUnblocksOnClose(t *testing.T) {
	h := NewHandle(1)
	h.Send([]byte("fill"))

	done := make(chan bool, 1)
	go func() { done <- h.Send([]byte("blocked")) }()
	h.Close()
	if <-done {
		t.Fatalf("blocked send reported success after close")
	}
}

func TestRegistryOverwriteKeepsNewest(t *testing.T) {
	r := NewConnRegistry()
	first := NewHandle(1)
	second := NewHandle(1)

	r.Put("alice", first)
	r.Put("alice", second)
	if r.Get("alice") != second {
		t.Fatalf("expected last writer to win")
	}
	if r.Len() != 1 {
		t.Fatalf("expected one entry, got %d", r.Len())
	}

	// the superseded handle is orphaned, not closed
	select {
	case <-first.Done():
		t.Fatalf("superseded handle was closed")
	default:
	}

	r.Remove("alice")
	r.Remove("alice") // absent, no-op
	if r.Get("alice") != nil || r.Len() != 0 {
		t.Fatalf("remove left state behind")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	d := NewSessionDirectory()
	d.sessions["s1"] = &Session{ID: "s1", White: "alice", FEN: "startpos", TurnWhite: true, State: StateAwaitingOpponent}

	snap := d.Snapshot("s1")
	snap.FEN = "mutated"
	if d.sessions["s1"].FEN != "startpos" {
		t.Fatalf("snapshot aliased live session")
	}
	if d.Snapshot("missing") != nil {
		t.Fatalf("snapshot of missing id must be nil")
	}
}
