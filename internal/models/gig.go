package models

import (
	"math"
	"strings"
	"time"
)

// Status is the lifecycle state of a gig listing.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusRejected Status = "rejected"
	StatusDeleted  Status = "deleted"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusPaused, StatusRejected, StatusDeleted:
		return true
	}
	return false
}

// GigRecord is a sellable service listing as supplied by the catalog store.
// Tags and Subcategory are optional and default to empty; ClickThroughRate
// is always derived, never trusted from input.
type GigRecord struct {
	ID               string    `json:"id"`
	SellerID         string    `json:"sellerId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	Tags             []string  `json:"tags"`
	Rating           float64   `json:"rating"`
	Impressions      int       `json:"impressions"`
	Clicks           int       `json:"clicks"`
	ClickThroughRate float64   `json:"clickThroughRate"`
	TrendingScore    float64   `json:"trendingScore"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Normalize defaults optional fields and recomputes the derived metrics.
// Catalog reads and snapshot ingestion both pass records through here so
// the rest of the engine never sees a half-formed gig.
func (g *GigRecord) Normalize() {
	if g.Tags == nil {
		g.Tags = []string{}
	}
	g.ClickThroughRate = ComputeCTR(g.Clicks, g.Impressions)
	g.TrendingScore = ComputeTrendingScore(g.Clicks, g.Impressions, g.Rating)
}

// Malformed reports why a record cannot be scored, or "" if it can.
func (g *GigRecord) Malformed() string {
	switch {
	case g.ID == "":
		return "missing id"
	case g.Title == "":
		return "missing title"
	case !g.Status.Valid():
		return "unknown status"
	case g.Rating < 0 || g.Rating > 5:
		return "rating out of range"
	case g.Impressions < 0 || g.Clicks < 0:
		return "negative counter"
	}
	return ""
}

// SearchText returns the combined text blob the relevance scorer matches
// against: title, description, category, subcategory and tags.
func (g *GigRecord) SearchText() string {
	parts := []string{g.Title, g.Description, g.Category}
	if g.Subcategory != "" {
		parts = append(parts, g.Subcategory)
	}
	if len(g.Tags) > 0 {
		parts = append(parts, strings.Join(g.Tags, " "))
	}
	return strings.Join(parts, " ")
}

// ComputeCTR derives the click-through-rate percentage, rounded to two
// decimal places. Zero impressions means zero CTR, not a division error.
func ComputeCTR(clicks, impressions int) float64 {
	if impressions == 0 {
		return 0
	}
	return math.Round(float64(clicks)/float64(impressions)*100*100) / 100
}

// ComputeTrendingScore derives the popularity metric used by the trending
// view: click-through-rate weighted engagement with a rating boost.
func ComputeTrendingScore(clicks, impressions int, rating float64) float64 {
	return ComputeCTR(clicks, impressions)*2 + float64(clicks)*0.5 + rating*5
}
