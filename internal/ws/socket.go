package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"drawdash/internal/game"
	"drawdash/internal/relay"
)

// guessedMessage replaces the literal word in chat when someone guesses
// correctly.
const guessedMessage = "🎯 Guessed the word!"

// Chat intents per connection: sustained rate and burst.
const (
	chatRate  = 2
	chatBurst = 5
)

// ConnCtx is the per-connection state: which room and player this socket
// speaks for.
type ConnCtx struct {
	RoomID   string
	PlayerID string
	chat     *rate.Limiter
}

// Server is the event gateway. It owns the connection/member bookkeeping
// and implements game.Emitter so rooms can broadcast through it.
type Server struct {
	registry *game.Registry
	io       *socketio.Server
	relay    relay.Relay
	instance string

	mu      sync.RWMutex
	members map[string]map[string]socketio.Conn // roomID -> playerID -> conn
}

func New(rly relay.Relay) *Server {
	return &Server{
		relay:    rly,
		instance: uuid.NewString(),
		members:  make(map[string]map[string]socketio.Conn),
	}
}

// UseRegistry wires the room registry in. Separate from New because the
// registry needs this server as its emitter.
func (srv *Server) UseRegistry(reg *game.Registry) { srv.registry = reg }

// Broadcast implements game.Emitter, fanning the event to every member
// connection of the room.
func (srv *Server) Broadcast(roomID, event string, payload any) {
	srv.mu.RLock()
	conns := make([]socketio.Conn, 0, len(srv.members[roomID]))
	for _, c := range srv.members[roomID] {
		conns = append(conns, c)
	}
	srv.mu.RUnlock()
	for _, c := range conns {
		c.Emit(event, payload)
	}
}

// Unicast implements game.Emitter.
func (srv *Server) Unicast(roomID, playerID, event string, payload any) {
	srv.mu.RLock()
	c := srv.members[roomID][playerID]
	srv.mu.RUnlock()
	if c != nil {
		c.Emit(event, payload)
	}
}

func (srv *Server) broadcastExcept(roomID, exceptPlayerID, event string, payload any) {
	srv.mu.RLock()
	conns := make([]socketio.Conn, 0, len(srv.members[roomID]))
	for pid, c := range srv.members[roomID] {
		if pid != exceptPlayerID {
			conns = append(conns, c)
		}
	}
	srv.mu.RUnlock()
	for _, c := range conns {
		c.Emit(event, payload)
	}
}

func (srv *Server) addMember(roomID, playerID string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.members[roomID] == nil {
		srv.members[roomID] = make(map[string]socketio.Conn)
	}
	srv.members[roomID][playerID] = c
}

func (srv *Server) removeMember(roomID, playerID string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if m := srv.members[roomID]; m != nil {
		delete(m, playerID)
		if len(m) == 0 {
			delete(srv.members, roomID)
		}
	}
}

// Mount attaches the Socket.IO server with all intent handlers to the
// given Gin engine and starts serving.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)
	srv.io = io

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{chat: rate.NewLimiter(rate.Limit(chatRate), chatBurst)})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// room:join
	io.OnEvent("/", "room:join", func(s socketio.Conn, payload struct {
		RoomID string      `json:"roomId"`
		Player game.Player `json:"player"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if ctx.RoomID != "" {
			return srv.err(s, "already_joined", "Leave the current room first")
		}
		roomID := strings.ToUpper(strings.TrimSpace(payload.RoomID))
		if roomID == "" || payload.Player.ID == "" || payload.Player.Username == "" {
			return srv.err(s, "validation_error", "roomId and player{id, username} are required")
		}

		room, ok := srv.registry.Get(roomID)
		if !ok {
			var err error
			room, err = srv.registry.Create(roomID, payload.Player.ID)
			if err != nil {
				// lost the creation race, join the winner's room
				room, _ = srv.registry.Get(roomID)
			}
			if room == nil {
				return srv.err(s, "room_not_found", "Room not found")
			}
		}
		if err := room.AddPlayer(payload.Player); err != nil {
			return srv.err(s, "room_full", "Room is full")
		}

		s.Join(roomID)
		ctx.RoomID = roomID
		ctx.PlayerID = payload.Player.ID
		srv.addMember(roomID, payload.Player.ID, s)
		log.Info().Str("sid", s.ID()).Str("room", roomID).Str("playerId", payload.Player.ID).Msg("room:join")

		// snapshot to the joiner only, join notice to everyone else
		s.Emit(game.EventRoomState, room.Snapshot())
		srv.broadcastExcept(roomID, payload.Player.ID, game.EventPlayerJoined, game.PlayerJoinedPayload{
			Player:  payload.Player,
			Players: room.Players(),
			HostID:  room.HostID(),
		})
		return map[string]any{"ok": true, "roomId": roomID}
	})

	// room:leave
	io.OnEvent("/", "room:leave", func(s socketio.Conn) map[string]any {
		srv.teardown(s, "room:leave")
		return map[string]any{"ok": true}
	})

	// game:start (host only)
	io.OnEvent("/", "game:start", func(s socketio.Conn) map[string]any {
		ctx := s.Context().(*ConnCtx)
		room, ok := srv.room(ctx)
		if !ok {
			return srv.err(s, "room_not_found", "Room not found")
		}
		if room.HostID() != ctx.PlayerID {
			return srv.err(s, "not_host", game.ErrNotHost.Error())
		}
		if err := room.StartGame(); err != nil {
			return srv.err(s, "bad_request", err.Error())
		}
		log.Info().Str("room", ctx.RoomID).Msg("game:start")
		return map[string]any{"ok": true}
	})

	// game:updateSettings (host only, lobby only)
	io.OnEvent("/", "game:updateSettings", func(s socketio.Conn, payload game.Settings) map[string]any {
		ctx := s.Context().(*ConnCtx)
		room, ok := srv.room(ctx)
		if !ok {
			return srv.err(s, "room_not_found", "Room not found")
		}
		if room.HostID() != ctx.PlayerID {
			return srv.err(s, "not_host", game.ErrNotHost.Error())
		}
		applied, err := room.UpdateSettings(payload)
		if err != nil {
			return srv.err(s, "bad_request", err.Error())
		}
		log.Info().Str("room", ctx.RoomID).Int("rounds", applied.TotalRounds).Int("time", applied.TimePerRound).Msg("game:updateSettings")
		srv.Broadcast(ctx.RoomID, game.EventSettingsUpdated, game.SettingsUpdatedPayload{
			TotalRounds:  applied.TotalRounds,
			TimePerRound: applied.TimePerRound,
		})
		return map[string]any{"ok": true}
	})

	// draw intents: drawer only, relayed to the room minus the sender,
	// logged for late-joiner resync. Unauthorized ops are dropped quietly.
	io.OnEvent("/", "draw:start", func(s socketio.Conn, payload struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Color string  `json:"color"`
		Width float64 `json:"width"`
	}) {
		srv.handleDraw(s, game.EventDrawStart, game.DrawOp{
			Type: game.DrawStart, X: payload.X, Y: payload.Y, Color: payload.Color, Width: payload.Width,
		})
	})
	io.OnEvent("/", "draw:move", func(s socketio.Conn, payload struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}) {
		srv.handleDraw(s, game.EventDrawMove, game.DrawOp{Type: game.DrawMove, X: payload.X, Y: payload.Y})
	})
	io.OnEvent("/", "draw:end", func(s socketio.Conn) {
		srv.handleDraw(s, game.EventDrawEnd, game.DrawOp{Type: game.DrawEnd})
	})
	io.OnEvent("/", "draw:clear", func(s socketio.Conn) {
		ctx := s.Context().(*ConnCtx)
		room, ok := srv.room(ctx)
		if !ok {
			return
		}
		if room.ClearDrawing(ctx.PlayerID) {
			srv.broadcastExcept(ctx.RoomID, ctx.PlayerID, game.EventDrawClear, struct{}{})
		}
	})

	// chat:message doubles as the guess channel during play
	io.OnEvent("/", "chat:message", func(s socketio.Conn, payload struct {
		Message string `json:"message"`
	}) map[string]any {
		return srv.handleChat(s, payload.Message)
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.teardown(s, "disconnect")
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	if srv.relay != nil {
		_ = srv.relay.Subscribe(relay.ChannelGameEvents, srv.onRelayMessage)
	}

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

func (srv *Server) room(ctx *ConnCtx) (*game.Room, bool) {
	if ctx.RoomID == "" {
		return nil, false
	}
	return srv.registry.Get(ctx.RoomID)
}

// handleChat routes a chat line through the guess path. A correct guess
// is masked before broadcast so the literal word never reaches the room;
// a near miss gets a private hint; anything else is relayed verbatim.
func (srv *Server) handleChat(s socketio.Conn, text string) map[string]any {
	ctx := s.Context().(*ConnCtx)
	room, ok := srv.room(ctx)
	if !ok {
		return srv.err(s, "room_not_found", "Room not found")
	}
	if strings.TrimSpace(text) == "" {
		return srv.err(s, "validation_error", "message is required")
	}
	if !ctx.chat.Allow() {
		return srv.err(s, "rate_limited", "Slow down")
	}

	res := room.SubmitGuess(ctx.PlayerID, text)
	msg := game.ChatMessagePayload{
		ID:         uuid.NewString(),
		PlayerID:   ctx.PlayerID,
		PlayerName: room.PlayerName(ctx.PlayerID),
		Message:    text,
	}
	if res.Correct {
		// never echo the word itself
		msg.Message = guessedMessage
		msg.IsCorrectGuess = true
	} else if res.Close {
		s.Emit(game.EventCloseGuess, game.CloseGuessPayload{
			Distance: res.Distance,
			Message:  "So close!",
		})
	}
	srv.Broadcast(ctx.RoomID, game.EventChatMessage, msg)
	srv.publish(ctx.RoomID, game.EventChatMessage, msg)
	return map[string]any{"ok": true, "correct": res.Correct}
}

func (srv *Server) handleDraw(s socketio.Conn, event string, op game.DrawOp) {
	ctx := s.Context().(*ConnCtx)
	room, ok := srv.room(ctx)
	if !ok {
		return
	}
	if room.AppendDrawOp(ctx.PlayerID, op) {
		srv.broadcastExcept(ctx.RoomID, ctx.PlayerID, event, op)
	}
}

// teardown removes the connection's player from its room and unsubscribes
// the socket. The last player out takes the room with them.
func (srv *Server) teardown(s socketio.Conn, cause string) {
	ctx, ok := s.Context().(*ConnCtx)
	if !ok || ctx.RoomID == "" {
		return
	}
	roomID, playerID := ctx.RoomID, ctx.PlayerID
	ctx.RoomID = ""
	ctx.PlayerID = ""

	s.Leave(roomID)
	srv.removeMember(roomID, playerID)

	room, found := srv.registry.Get(roomID)
	if !found {
		return
	}
	if empty := room.RemovePlayer(playerID); empty {
		srv.registry.Remove(roomID)
		log.Info().Str("room", roomID).Msg("room deleted, last player left")
		return
	}
	srv.Broadcast(roomID, game.EventPlayerLeft, game.PlayerLeftPayload{
		PlayerID: playerID,
		Players:  room.Players(),
		HostID:   room.HostID(),
	})
	log.Info().Str("room", roomID).Str("playerId", playerID).Str("cause", cause).Msg("player left")
}

// publish pushes an event onto the cross-instance relay, tagged with this
// instance's id so we skip it on the way back in.
func (srv *Server) publish(roomID, event string, payload any) {
	if srv.relay == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	env, err := json.Marshal(relay.Envelope{
		Origin:  srv.instance,
		RoomID:  roomID,
		Event:   event,
		Payload: raw,
	})
	if err != nil {
		return
	}
	if err := srv.relay.Publish(relay.ChannelGameEvents, env); err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("relay publish failed")
	}
}

func (srv *Server) onRelayMessage(payload []byte) {
	var env relay.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		log.Error().Err(err).Msg("relay message unmarshal failed")
		return
	}
	if env.Origin == srv.instance {
		return
	}
	srv.Broadcast(env.RoomID, env.Event, json.RawMessage(env.Payload))
}

// err reports a failure to the originating connection only; nothing is
// ever broadcast for a failed intent.
func (srv *Server) err(s socketio.Conn, code, message string) map[string]any {
	s.Emit("error", map[string]any{"code": code, "message": message})
	return map[string]any{"error": message}
}
