package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"drawdash/internal/game"
)

// Recorder folds final standings into lifetime user stats. Best-effort:
// a failed write is logged and skipped, never surfaced to the game.
type Recorder struct {
	users UserStore
}

func NewRecorder(users UserStore) *Recorder {
	return &Recorder{users: users}
}

func (r *Recorder) RecordResult(roomID string, rankings []game.Ranking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i, rk := range rankings {
		u, err := r.users.Get(ctx, rk.PlayerID)
		if errors.Is(err, ErrUserNotFound) {
			u = User{ID: rk.PlayerID}
		} else if err != nil {
			log.Error().Err(err).Str("room", roomID).Str("playerId", rk.PlayerID).Msg("stats read failed")
			continue
		}
		u.Username = rk.Username
		u.GamesPlayed++
		u.TotalScore += rk.Score
		if i == 0 {
			u.Wins++
		}
		if err := r.users.Put(ctx, u); err != nil {
			log.Error().Err(err).Str("room", roomID).Str("playerId", rk.PlayerID).Msg("stats write failed")
		}
	}
}
