package model

import (
	"fmt"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewPostID returns a time-based post identifier. Values are strictly
// increasing within a process even when the clock does not advance between
// calls, so ids minted in one session never collide.
func NewPostID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return fmt.Sprintf("post-%d", now)
}
