package core

import (
	"time"

	"github.com/samber/lo"
)

// WaitingRoom is the pre-game roster of a single room.
// It has no locking of its own; the registry mutates it under the room lock.
type WaitingRoom struct {
	Room     string
	capacity int
	members  []string
	data     map[string]map[string]any

	lastInvitation time.Time
}

// NewWaitingRoom constructs an empty waiting room bounded by capacity.
func NewWaitingRoom(room string, capacity int) *WaitingRoom {
	return &WaitingRoom{
		Room:     room,
		capacity: capacity,
		data:     make(map[string]map[string]any),
	}
}

// Add inserts a participant. Returns false if already present or full.
func (w *WaitingRoom) Add(user string) bool {
	if w.Contains(user) || w.Full() {
		return false
	}
	w.members = append(w.members, user)
	w.data[user] = make(map[string]any)
	return true
}

// Remove deletes a participant. Returns true if removed.
func (w *WaitingRoom) Remove(user string) bool {
	idx := lo.IndexOf(w.members, user)
	if idx < 0 {
		return false
	}
	w.members = append(w.members[:idx], w.members[idx+1:]...)
	delete(w.data, user)
	return true
}

// Replace swaps old for replacement in place, carrying over old's data.
func (w *WaitingRoom) Replace(old, replacement string) bool {
	idx := lo.IndexOf(w.members, old)
	if idx < 0 || w.Contains(replacement) {
		return false
	}
	w.members[idx] = replacement
	w.data[replacement] = w.data[old]
	delete(w.data, old)
	return true
}

// Contains reports whether user is a member.
func (w *WaitingRoom) Contains(user string) bool {
	return lo.Contains(w.members, user)
}

// Size returns the number of members.
func (w *WaitingRoom) Size() int {
	return len(w.members)
}

// Capacity returns the maximum number of members.
func (w *WaitingRoom) Capacity() int {
	return w.capacity
}

// Full returns true if no further member fits.
func (w *WaitingRoom) Full() bool {
	return len(w.members) >= w.capacity
}

// Empty returns true if nobody has joined.
func (w *WaitingRoom) Empty() bool {
	return len(w.members) == 0
}

// Members returns a copy of the roster in join order.
func (w *WaitingRoom) Members() []string {
	out := make([]string, len(w.members))
	copy(out, w.members)
	return out
}

// Data returns the settings map of a member, or nil for non-members.
// Games use it to stash per-player configuration before they start.
func (w *WaitingRoom) Data(user string) map[string]any {
	return w.data[user]
}

// Clear drops every member and their data.
func (w *WaitingRoom) Clear() {
	w.members = nil
	w.data = make(map[string]map[string]any)
}

func (w *WaitingRoom) settingsSnapshot() map[string]map[string]any {
	out := make(map[string]map[string]any, len(w.data))
	for user, values := range w.data {
		out[user] = lo.Assign(values)
	}
	return out
}
