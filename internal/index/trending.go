package index

import (
	"sort"

	"gig-discovery/internal/models"
)

// TrendingList keeps gigs sorted descending by trending score. Inserts
// re-sort the backing slice, so Top is O(1) at the cost of O(n log n) per
// insert. That cost is a known ceiling at larger catalog sizes.
type TrendingList struct {
	gigs []models.GigRecord
}

// NewTrendingList creates an empty trending view.
func NewTrendingList() *TrendingList {
	return &TrendingList{gigs: []models.GigRecord{}}
}

// Insert adds a gig and restores descending score order. Equal scores keep
// insertion order.
func (l *TrendingList) Insert(gig models.GigRecord) {
	l.gigs = append(l.gigs, gig)
	sort.SliceStable(l.gigs, func(i, j int) bool {
		return l.gigs[i].TrendingScore > l.gigs[j].TrendingScore
	})
}

// Top returns the first n gigs (all of them when n exceeds the length).
func (l *TrendingList) Top(n int) []models.GigRecord {
	if n < 0 {
		n = 0
	}
	if n > len(l.gigs) {
		n = len(l.gigs)
	}
	out := make([]models.GigRecord, n)
	copy(out, l.gigs[:n])
	return out
}

// Len returns the number of tracked gigs.
func (l *TrendingList) Len() int {
	return len(l.gigs)
}
