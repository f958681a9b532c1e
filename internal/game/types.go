package game

// State is the lifecycle phase of a room. Transitions form a single
// linear-with-loop machine:
// waiting -> starting -> playing -> roundEnd -> (playing | gameEnd) -> waiting
type State string

const (
	StateWaiting  State = "waiting"
	StateStarting State = "starting"
	StatePlaying  State = "playing"
	StateRoundEnd State = "roundEnd"
	StateGameEnd  State = "gameEnd"
)

type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Settings are the host-tunable game parameters: 1-10 rounds, 30-180
// seconds per round.
type Settings struct {
	TotalRounds  int `json:"totalRounds"`
	TimePerRound int `json:"timePerRound"` // seconds
}

const (
	MinRounds    = 1
	MaxRounds    = 10
	MinRoundTime = 30
	MaxRoundTime = 180
)

// DrawOp is one canvas action. Ops are appended to a per-room log so a
// late joiner can replay the current drawing.
type DrawOp struct {
	Type  string  `json:"type"` // "start", "move", "end"
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

const (
	DrawStart = "start"
	DrawMove  = "move"
	DrawEnd   = "end"
)

// GuessResult reports what SubmitGuess did. Close/Distance describe a
// near miss and never imply any state change.
type GuessResult struct {
	Correct  bool
	Points   int
	Close    bool
	Distance int
}

// Emitter fans room events out to connected clients. Implemented by the
// gateway; rooms call it while holding their own lock, so implementations
// must never call back into the room.
type Emitter interface {
	Broadcast(roomID, event string, payload any)
	Unicast(roomID, playerID, event string, payload any)
}

// Recorder receives final standings after a game ends. Implementations
// are expected to be slow (persistence), so rooms invoke them on a
// separate goroutine.
type Recorder interface {
	RecordResult(roomID string, rankings []Ranking)
}
