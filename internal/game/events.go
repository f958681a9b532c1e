package game

// Event names shared between the room engine and the gateway. Inbound
// intents reuse the same draw/chat names; the full set of intents lives
// with the gateway.
const (
	EventRoomState       = "room:state"
	EventPlayerJoined    = "room:playerJoined"
	EventPlayerLeft      = "room:playerLeft"
	EventRoundStart      = "game:roundStart"
	EventWord            = "game:word"
	EventTimerUpdate     = "game:timerUpdate"
	EventCorrectGuess    = "game:correctGuess"
	EventRoundEnd        = "game:roundEnd"
	EventGameEnd         = "game:end"
	EventSettingsUpdated = "game:settingsUpdated"
	EventChatMessage     = "chat:message"
	EventCloseGuess      = "chat:closeGuess"
	EventDrawStart       = "draw:start"
	EventDrawMove        = "draw:move"
	EventDrawEnd         = "draw:end"
	EventDrawClear       = "draw:clear"
)

// RoomStatePayload is the full snapshot sent privately to a joining
// connection. It never contains the current word.
type RoomStatePayload struct {
	ID            string         `json:"id"`
	Players       []Player       `json:"players"`
	HostID        string         `json:"hostId"`
	GameState     State          `json:"gameState"`
	CurrentRound  int            `json:"currentRound"`
	TotalRounds   int            `json:"totalRounds"`
	TimePerRound  int            `json:"timePerRound"`
	CurrentDrawer string         `json:"currentDrawer,omitempty"`
	Scores        map[string]int `json:"scores"`
	DrawingData   []DrawOp       `json:"drawingData"`
	TimeRemaining int            `json:"timeRemaining"`
}

type PlayerJoinedPayload struct {
	Player  Player   `json:"player"`
	Players []Player `json:"players"`
	HostID  string   `json:"hostId"`
}

type PlayerLeftPayload struct {
	PlayerID string   `json:"playerId"`
	Players  []Player `json:"players"`
	HostID   string   `json:"hostId"`
}

// RoundStartPayload deliberately has no word field; the word travels only
// in the per-drawer WordPayload unicast.
type RoundStartPayload struct {
	Round        int    `json:"round"`
	TotalRounds  int    `json:"totalRounds"`
	Drawer       string `json:"drawer"`
	TimePerRound int    `json:"timePerRound"`
}

type WordPayload struct {
	Word string `json:"word"`
}

type TimerUpdatePayload struct {
	Time int `json:"time"`
}

type CorrectGuessPayload struct {
	PlayerID string         `json:"playerId"`
	Points   int            `json:"points"`
	Scores   map[string]int `json:"scores"`
}

type RoundEndPayload struct {
	Word            string         `json:"word"`
	CorrectGuessers []string       `json:"correctGuessers"`
	Scores          map[string]int `json:"scores"`
}

type Ranking struct {
	PlayerID string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type GameEndPayload struct {
	Rankings []Ranking      `json:"rankings"`
	Scores   map[string]int `json:"scores"`
}

type SettingsUpdatedPayload struct {
	TotalRounds  int `json:"totalRounds"`
	TimePerRound int `json:"timePerRound"`
}

type ChatMessagePayload struct {
	ID             string `json:"id"`
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	Message        string `json:"message"`
	IsSystem       bool   `json:"isSystem"`
	IsCorrectGuess bool   `json:"isCorrectGuess,omitempty"`
}

// CloseGuessPayload is unicast to the guesser only.
type CloseGuessPayload struct {
	Distance int    `json:"distance"`
	Message  string `json:"message"`
}
