package game

import "time"

// Each room owns at most one countdown. The stop channel doubles as a
// generation token: a tick compares its own channel against the room's
// current one, so a ticker that was superseded while waiting for the lock
// exits without touching state.

func (r *Room) startTimerLocked() {
	r.stopTimerLocked()
	stop := make(chan struct{})
	r.timerStop = stop
	r.timeRemaining = r.settings.TimePerRound
	go r.runTimer(stop)
}

func (r *Room) stopTimerLocked() {
	if r.timerStop != nil {
		close(r.timerStop)
		r.timerStop = nil
	}
}

func (r *Room) runTimer(stop chan struct{}) {
	t := time.NewTicker(r.tickInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if r.tick(stop) {
				return
			}
		}
	}
}

// tick decrements and broadcasts the remaining time, ending the round at
// zero. Returns true when this ticker is done.
func (r *Room) tick(stop chan struct{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timerStop != stop {
		return true
	}
	r.timeRemaining--
	r.emit.Broadcast(r.id, EventTimerUpdate, TimerUpdatePayload{Time: r.timeRemaining})
	if r.timeRemaining <= 0 {
		r.endRoundLocked()
		return true
	}
	return false
}
