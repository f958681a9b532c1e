package game

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
)

const (
	// Seconds are only ticked down while playing; the tick interval is a
	// field so tests can shrink it.
	defaultTickInterval = time.Second

	// Pause between the round-end reveal and the next round.
	defaultInterRoundDelay = 5 * time.Second

	// Incorrect guesses within this edit distance trigger a private hint.
	closeGuessDistance = 2
)

// Room owns one game session: roster, round counter, drawer rotation,
// secret word, score ledger and the countdown timer. All mutation goes
// through its methods; a single mutex serializes them, and events are
// emitted in operation order while the lock is held.
type Room struct {
	mu sync.Mutex

	id     string
	hostID string

	players []Player       // insertion order
	names   map[string]string // usernames, retained after departure
	joinSeq map[string]int    // join order, retained for ranking ties
	nextSeq int

	state        State
	currentRound int
	settings     Settings

	drawerID     string
	prevDrawerID string // rotation anchor, survives round end
	word         string

	correct []string // correct guessers this round, in guess order
	scores  map[string]int

	drawing []DrawOp

	timeRemaining int
	timerStop     chan struct{}

	maxPlayers int
	minPlayers int

	supplier *WordSupplier
	emit     Emitter
	recorder Recorder

	tickInterval    time.Duration
	interRoundDelay time.Duration
}

func newRoom(id, hostID string, opts Options) *Room {
	return &Room{
		id:              id,
		hostID:          hostID,
		names:           make(map[string]string),
		joinSeq:         make(map[string]int),
		state:           StateWaiting,
		settings:        opts.Defaults,
		scores:          make(map[string]int),
		maxPlayers:      opts.MaxPlayers,
		minPlayers:      opts.MinPlayers,
		supplier:        opts.Supplier,
		emit:            opts.Emitter,
		recorder:        opts.Recorder,
		tickInterval:    defaultTickInterval,
		interRoundDelay: defaultInterRoundDelay,
	}
}

func (r *Room) ID() string { return r.id }

func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playersLocked()
}

func (r *Room) playersLocked() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// PlayerName returns the last-known username for an id, including players
// who already left.
func (r *Room) PlayerName(playerID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[playerID]
}

// AddPlayer appends the player to the roster. Joining twice is a no-op;
// a full room is refused with ErrRoomFull. An existing score survives a
// rejoin, otherwise it starts at zero.
func (r *Room) AddPlayer(p Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.players {
		if q.ID == p.ID {
			return nil
		}
	}
	if len(r.players) >= r.maxPlayers {
		return ErrRoomFull
	}
	r.players = append(r.players, p)
	r.names[p.ID] = p.Username
	if _, ok := r.joinSeq[p.ID]; !ok {
		r.joinSeq[p.ID] = r.nextSeq
		r.nextSeq++
	}
	if _, ok := r.scores[p.ID]; !ok {
		r.scores[p.ID] = 0
	}
	return nil
}

// RemovePlayer drops the player from the roster. Scores and usernames are
// retained for final standings. Host duty passes to the next-oldest
// player; if the current drawer leaves mid-round the round ends at once.
// Returns true when the roster is now empty and the room should be
// removed from the registry.
func (r *Room) RemovePlayer(playerID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, p := range r.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return len(r.players) == 0
	}
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	if len(r.players) == 0 {
		r.stopTimerLocked()
		return true
	}
	if r.hostID == playerID {
		r.hostID = r.players[0].ID
	}
	if r.drawerID == playerID && r.state == StatePlaying {
		r.endRoundLocked()
	}
	return false
}

// StartGame moves a waiting room into its first round. Requires at least
// the minimum player count. All scores reset to zero.
func (r *Room) StartGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateWaiting {
		return ErrWrongState
	}
	if len(r.players) < r.minPlayers {
		return ErrNotEnoughPlayers
	}
	r.state = StateStarting
	r.currentRound = 1
	r.scores = make(map[string]int, len(r.players))
	for _, p := range r.players {
		r.scores[p.ID] = 0
	}
	r.startRoundLocked()
	return nil
}

// startRoundLocked begins a round: fresh guess set, fresh canvas, new
// word, drawer rotated to the next roster position after the previous
// drawer (index 0 when there is none, or when the previous drawer left).
// The public round-start broadcast omits the word; only the drawer gets
// it, on a private unicast.
func (r *Room) startRoundLocked() {
	r.correct = nil
	r.drawing = nil
	r.word = r.supplier.Next()

	prev := -1
	for i, p := range r.players {
		if p.ID == r.prevDrawerID {
			prev = i
			break
		}
	}
	r.drawerID = r.players[(prev+1)%len(r.players)].ID
	r.prevDrawerID = r.drawerID

	r.state = StatePlaying
	r.startTimerLocked()

	r.emit.Broadcast(r.id, EventRoundStart, RoundStartPayload{
		Round:        r.currentRound,
		TotalRounds:  r.settings.TotalRounds,
		Drawer:       r.drawerID,
		TimePerRound: r.settings.TimePerRound,
	})
	r.emit.Unicast(r.id, r.drawerID, EventWord, WordPayload{Word: r.word})
}

// SubmitGuess checks a guess against the secret word. Outside of play,
// from the drawer, or from a player who already guessed, it is a no-op.
// Comparison is exact after trimming and lowercasing; a near miss is
// reported back so the gateway can hint the guesser privately.
func (r *Room) SubmitGuess(playerID, text string) GuessResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePlaying || playerID == r.drawerID {
		return GuessResult{}
	}
	for _, id := range r.correct {
		if id == playerID {
			return GuessResult{}
		}
	}

	guess := strings.ToLower(strings.TrimSpace(text))
	target := strings.ToLower(strings.TrimSpace(r.word))
	if guess != target {
		d := levenshtein.ComputeDistance(guess, target)
		return GuessResult{Distance: d, Close: d <= closeGuessDistance}
	}

	r.correct = append(r.correct, playerID)
	pts := GuessPoints(len(r.correct), r.timeRemaining)
	r.scores[playerID] += pts
	r.scores[r.drawerID] += DrawerBonus

	r.emit.Broadcast(r.id, EventCorrectGuess, CorrectGuessPayload{
		PlayerID: playerID,
		Points:   pts,
		Scores:   r.scoresCopyLocked(),
	})

	if len(r.correct) >= len(r.players)-1 {
		r.endRoundLocked()
	}
	return GuessResult{Correct: true, Points: pts}
}

// endRoundLocked reveals the word and either finishes the game or
// schedules the next round. No-op unless playing, which makes it safe
// against a stale timer tick racing an early round end.
func (r *Room) endRoundLocked() {
	if r.state != StatePlaying {
		return
	}
	r.stopTimerLocked()
	r.state = StateRoundEnd

	correct := make([]string, len(r.correct))
	copy(correct, r.correct)
	r.emit.Broadcast(r.id, EventRoundEnd, RoundEndPayload{
		Word:            r.word,
		CorrectGuessers: correct,
		Scores:          r.scoresCopyLocked(),
	})
	r.drawerID = ""
	r.word = ""

	if r.currentRound >= r.settings.TotalRounds {
		r.endGameLocked()
		return
	}
	time.AfterFunc(r.interRoundDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.state != StateRoundEnd || len(r.players) == 0 {
			return
		}
		r.currentRound++
		r.startRoundLocked()
	})
}

// endGameLocked broadcasts final standings and resets the room so a new
// game can start without recreating it. Scores stay visible until the
// next StartGame wipes them.
func (r *Room) endGameLocked() {
	r.state = StateGameEnd
	rankings := r.rankingsLocked()
	r.emit.Broadcast(r.id, EventGameEnd, GameEndPayload{
		Rankings: rankings,
		Scores:   r.scoresCopyLocked(),
	})
	if r.recorder != nil {
		go r.recorder.RecordResult(r.id, rankings)
	}

	r.state = StateWaiting
	r.currentRound = 0
	r.drawerID = ""
	r.prevDrawerID = ""
	r.word = ""
	r.correct = nil
	r.drawing = nil
	r.timeRemaining = 0
}

// rankingsLocked sorts by score descending; ties go to the earlier
// joiner. Departed players keep their retained scores and last-known
// usernames.
func (r *Room) rankingsLocked() []Ranking {
	out := make([]Ranking, 0, len(r.scores))
	for id, score := range r.scores {
		out = append(out, Ranking{PlayerID: id, Username: r.names[id], Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return r.joinSeq[out[i].PlayerID] < r.joinSeq[out[j].PlayerID]
	})
	return out
}

// UpdateSettings validates and applies new game parameters. Only allowed
// while waiting. Zero-valued fields are left unchanged.
func (r *Room) UpdateSettings(s Settings) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateWaiting {
		return r.settings, ErrWrongState
	}
	if s.TotalRounds != 0 && (s.TotalRounds < MinRounds || s.TotalRounds > MaxRounds) {
		return r.settings, ErrInvalidSettings
	}
	if s.TimePerRound != 0 && (s.TimePerRound < MinRoundTime || s.TimePerRound > MaxRoundTime) {
		return r.settings, ErrInvalidSettings
	}
	if s.TotalRounds != 0 {
		r.settings.TotalRounds = s.TotalRounds
	}
	if s.TimePerRound != 0 {
		r.settings.TimePerRound = s.TimePerRound
	}
	return r.settings, nil
}

func (r *Room) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// AppendDrawOp records a canvas action if, and only if, the sender is the
// current drawer. Unauthorized ops report false and leave no trace.
func (r *Room) AppendDrawOp(playerID string, op DrawOp) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawerID == "" || playerID != r.drawerID {
		return false
	}
	r.drawing = append(r.drawing, op)
	return true
}

// ClearDrawing wipes the canvas log, drawer only.
func (r *Room) ClearDrawing(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawerID == "" || playerID != r.drawerID {
		return false
	}
	r.drawing = nil
	return true
}

// Snapshot builds the full room state for a joining connection. The
// secret word is never part of it.
func (r *Room) Snapshot() RoomStatePayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	drawing := make([]DrawOp, len(r.drawing))
	copy(drawing, r.drawing)
	return RoomStatePayload{
		ID:            r.id,
		Players:       r.playersLocked(),
		HostID:        r.hostID,
		GameState:     r.state,
		CurrentRound:  r.currentRound,
		TotalRounds:   r.settings.TotalRounds,
		TimePerRound:  r.settings.TimePerRound,
		CurrentDrawer: r.drawerID,
		Scores:        r.scoresCopyLocked(),
		DrawingData:   drawing,
		TimeRemaining: r.timeRemaining,
	}
}

func (r *Room) scoresCopyLocked() map[string]int {
	out := make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		out[id] = s
	}
	return out
}

// close stops the countdown; called by the registry on removal.
func (r *Room) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
}
