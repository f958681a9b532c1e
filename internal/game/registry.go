package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
)

// Options carries the collaborators and limits every room is built with.
type Options struct {
	Emitter    Emitter
	Supplier   *WordSupplier
	Recorder   Recorder // optional
	Defaults   Settings
	MaxPlayers int
	MinPlayers int
}

// Registry is the process-wide map from join code to live room. A room is
// present exactly while it has players; the gateway removes it once the
// last player leaves.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	opts  Options
}

func NewRegistry(opts Options) *Registry {
	if opts.Supplier == nil {
		opts.Supplier = NewWordSupplier()
	}
	if opts.MaxPlayers <= 0 {
		opts.MaxPlayers = 8
	}
	if opts.MinPlayers <= 0 {
		opts.MinPlayers = 2
	}
	if opts.Defaults.TotalRounds == 0 {
		opts.Defaults.TotalRounds = 3
	}
	if opts.Defaults.TimePerRound == 0 {
		opts.Defaults.TimePerRound = 60
	}
	return &Registry{rooms: make(map[string]*Room), opts: opts}
}

func (g *Registry) Create(roomID, hostID string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.rooms[roomID]; ok {
		return nil, ErrRoomExists
	}
	r := newRoom(roomID, hostID, g.opts)
	g.rooms[roomID] = r
	return r, nil
}

func (g *Registry) Get(roomID string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[roomID]
	return r, ok
}

func (g *Registry) Remove(roomID string) {
	g.mu.Lock()
	r, ok := g.rooms[roomID]
	delete(g.rooms, roomID)
	g.mu.Unlock()
	if ok {
		r.close()
	}
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// NewCode allocates a join code that no live room is using: 6 uppercase
// hex characters. Codes are not reserved: two concurrent calls can draw
// the same code, and the join path tolerates that by merging both
// parties into whichever room Create wins (the loser's Create returns
// ErrRoomExists and it joins the winner's room).
func (g *Registry) NewCode() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	code := randomCode()
	for g.rooms[code] != nil {
		code = randomCode()
	}
	return code
}

func randomCode() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
