package server

import (
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int
	seq      int // Submission order, earlier wins ties
}

// Leaderboard keeps the best scores, highest first. It is not safe for concurrent use;
// the Server guards it.
type Leaderboard struct {
	size    int
	entries []TopScoreEntry
	seq     int
}

// NewLeaderboard creates a leaderboard holding at most size entries.
func NewLeaderboard(size int) *Leaderboard {
	return &Leaderboard{size: size}
}

// Submit offers a score. Each client keeps only its best entry.
// Returns true if the board changed.
func (b *Leaderboard) Submit(username string, score, clientID int) bool {
	if score <= 0 || b.size <= 0 {
		return false
	}

	if i := slices.IndexFunc(b.entries, func(e TopScoreEntry) bool { return e.clientID == clientID }); i >= 0 {
		if b.entries[i].Score >= score {
			return false
		}
		b.entries = slices.Delete(b.entries, i, i+1)
	}

	if len(b.entries) == b.size && score <= b.entries[len(b.entries)-1].Score {
		return false
	}

	b.seq++
	b.entries = append(b.entries, TopScoreEntry{Username: username, Score: score, clientID: clientID, seq: b.seq})
	slices.SortFunc(b.entries, func(x, y TopScoreEntry) int {
		if x.Score != y.Score {
			return y.Score - x.Score
		}
		return x.seq - y.seq
	})
	if len(b.entries) > b.size {
		b.entries = b.entries[:b.size]
	}
	return true
}

// Entries returns a copy of the board, best first.
func (b *Leaderboard) Entries() []TopScoreEntry {
	return slices.Clone(b.entries)
}
