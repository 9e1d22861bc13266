package gateway

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/park285/chess-arena/internal/arena"
	"github.com/park285/chess-arena/internal/auth"
	"github.com/park285/chess-arena/internal/obslog"
	"github.com/park285/chess-arena/pkg/wire"
)

const writeTimeout = 10 * time.Second

// Gateway upgrades authenticated HTTP requests to websocket connections and
// runs the per-connection reader/writer pair bridging the network and the
// hub. The bearer credential travels in the connection address.
type Gateway struct {
	verifier auth.Verifier
	hub      *arena.Hub
}

func New(verifier auth.Verifier, hub *arena.Hub) *Gateway {
	return &Gateway{verifier: verifier, hub: hub}
}

// Register mounts the websocket endpoint on mux.
func (g *Gateway) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/{token}", g.handleWS)
}

func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	identity, ok := g.verifier.Verify(r.PathValue("token"))
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		obslog.L().Warn("ws_accept_error", zap.String("player", identity.Username), zap.Error(err))
		return
	}

	placement, handle := g.hub.Connect(identity.Username)

	ctx := r.Context()
	go writeLoop(ctx, conn, handle)

	// Reader: decode inbound frames into move commands. Close, transport
	// error and decode-loop exit all end up in the same cleanup path; frames
	// that are not a move command are dropped without a reply.
	for {
		_, data, rerr := conn.Read(ctx)
		if rerr != nil {
			break
		}
		move, valid := wire.DecodeMove(data)
		if !valid {
			continue
		}
		g.hub.HandleMove(identity.Username, placement.SessionID, move)
	}

	handle.Close()
	g.hub.Disconnect(identity.Username, placement.SessionID)
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
}

// writeLoop drains the handle's outbound queue into the socket. It stops when
// the handle closes or a network write fails; a superseded handle keeps its
// loop alive until one of the two happens.
func writeLoop(ctx context.Context, conn *websocket.Conn, handle *arena.Handle) {
	for {
		select {
		case <-handle.Done():
			return
		case frame := <-handle.Outbound():
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				handle.Close()
				return
			}
		}
	}
}
