package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
)

// idleState is the state of a room's eviction task.
// Only the registry transitions it: a game start pauses, a reset resumes.
type idleState int

const (
	idleRunning idleState = iota
	idlePaused
)

func (s idleState) String() string {
	if s == idlePaused {
		return "paused"
	}
	return "running"
}

// RunIdleEviction runs one eviction task per room until ctx is cancelled.
func (r *Registry) RunIdleEviction(ctx context.Context) {
	var wg sync.WaitGroup
	for _, room := range r.order {
		ticker := r.clock.Ticker(r.idlePeriod)
		wg.Add(1)
		go func(room string, ticker *clock.Ticker) {
			defer wg.Done()
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					r.EvictIdle(ctx, room)
				}
			}
		}(room, ticker)
	}
	r.log.Info().Int("rooms", len(r.order)).Dur("period", r.idlePeriod).Msg("idle eviction started")
	wg.Wait()
}

// EvictIdle runs a single eviction pass over room and returns who was removed.
// Liveness is queried without holding the room lock; state and membership
// are checked again before anyone is removed.
func (r *Registry) EvictIdle(ctx context.Context, room string) []string {
	slot, ok := r.rooms[room]
	if !ok || r.idleThreshold <= 0 {
		return nil
	}

	slot.mu.Lock()
	if slot.game != nil || slot.idle == idlePaused || slot.waiting.Empty() {
		slot.mu.Unlock()
		return nil
	}
	members := slot.waiting.Members()
	slot.mu.Unlock()

	var idle []string
	for _, user := range members {
		d, err := r.chat.IdleTime(ctx, user)
		if err != nil {
			r.log.Warn().Err(err).Str("room", room).Str("user", user).Msg("idle check failed")
			continue
		}
		if d > r.idleThreshold {
			idle = append(idle, user)
		}
	}
	if len(idle) == 0 {
		return nil
	}

	var (
		ob      outbox
		evicted []string
	)
	slot.mu.Lock()
	if slot.game == nil && slot.idle == idleRunning {
		for _, user := range idle {
			if r.removeLocked(slot, user, &ob) {
				evicted = append(evicted, user)
				ob.private(user, fmt.Sprintf("You have been removed from the %s game due to inactivity.", room))
			}
		}
	}
	slot.mu.Unlock()
	ob.flush(r.chat)

	if len(evicted) > 0 {
		r.log.Info().Str("room", room).Strs("users", evicted).Msg("evicted idle participants")
	}
	return evicted
}

// IdleTaskState returns "running" or "paused" for the room's eviction task.
func (r *Registry) IdleTaskState(room string) (string, error) {
	slot, ok := r.rooms[room]
	if !ok {
		return "", roomError(ErrInvalidRoom, room)
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.idle.String(), nil
}
