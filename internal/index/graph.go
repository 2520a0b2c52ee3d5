package index

import "sort"

// UserGigGraph maps users to the categories and sellers they have
// interacted with, supporting collaborative "users like you" scoring.
// Interactions are sets: repeating one is a no-op, not a stronger signal.
type UserGigGraph struct {
	users map[string]*userProfile
	order []string // registration order, used as the similarity tie-break
}

type userProfile struct {
	categories map[string]bool
	sellers    map[string]bool
}

// UserScore pairs a user with a similarity score.
type UserScore struct {
	UserID string  `json:"userId"`
	Score  float64 `json:"score"`
}

// NewUserGigGraph creates an empty graph.
func NewUserGigGraph() *UserGigGraph {
	return &UserGigGraph{users: make(map[string]*userProfile)}
}

// AddInteraction registers that user engaged with a gig in category sold by
// seller. Empty fields are skipped individually.
func (g *UserGigGraph) AddInteraction(userID, category, sellerID string) {
	if userID == "" {
		return
	}
	profile, ok := g.users[userID]
	if !ok {
		profile = &userProfile{
			categories: make(map[string]bool),
			sellers:    make(map[string]bool),
		}
		g.users[userID] = profile
		g.order = append(g.order, userID)
	}
	if category != "" {
		profile.categories[category] = true
	}
	if sellerID != "" {
		profile.sellers[sellerID] = true
	}
}

// SimilarUsers scores every other known user against userID with
// 2×|category overlap| + 1.5×|seller overlap|, keeping positive scores
// sorted descending. Ties keep user registration order. The relation is not
// symmetric in general: it depends on both users' interaction sets.
func (g *UserGigGraph) SimilarUsers(userID string) []UserScore {
	me, ok := g.users[userID]
	results := []UserScore{}
	if !ok {
		return results
	}

	for _, otherID := range g.order {
		if otherID == userID {
			continue
		}
		other := g.users[otherID]

		score := 2*float64(intersectionSize(me.categories, other.categories)) +
			1.5*float64(intersectionSize(me.sellers, other.sellers))
		if score > 0 {
			results = append(results, UserScore{UserID: otherID, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Users returns the number of known users.
func (g *UserGigGraph) Users() int {
	return len(g.users)
}

func intersectionSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}
