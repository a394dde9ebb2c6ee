// Package leaderboard turns unordered score records into a display-ready
// board using dense competition ranking.
package leaderboard

import (
	"fmt"
	"sort"

	"cyberquiz-service/internal/domain"
)

// Rank sorts entries by score descending (ties ordered by name ascending for
// a deterministic total order) and assigns competition ranks: tied entries
// share a rank, and the entry after a tied group takes its 1-based position
// in the sorted sequence, so [90, 90, 80, 70] ranks as [1, 1, 3, 4].
//
// The input slice is never mutated, and the output depends only on the set
// of entries, not their order.
func Rank(entries []domain.LeaderboardEntry) ([]domain.RankedEntry, error) {
	for i, e := range entries {
		if e.UserID == "" || e.Name == "" {
			return nil, fmt.Errorf("entry %d has blank identity: %w", i, domain.ErrInvalidEntry)
		}
		if e.Score < 0 {
			return nil, fmt.Errorf("entry %d (%s) has negative score %d: %w", i, e.UserID, e.Score, domain.ErrInvalidEntry)
		}
	}

	ranked := make([]domain.RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = domain.RankedEntry{LeaderboardEntry: e}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	for i := range ranked {
		if i > 0 && ranked[i].Score == ranked[i-1].Score {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// Split partitions a ranked board into the podium (at most three entries)
// and the remainder. It is a pure slice; ranks are not recomputed.
func Split(ranked []domain.RankedEntry) (topThree, rest []domain.RankedEntry) {
	if len(ranked) <= 3 {
		return ranked, nil
	}
	return ranked[:3], ranked[3:]
}
