package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCTR(t *testing.T) {
	tests := []struct {
		name        string
		clicks      int
		impressions int
		expected    float64
	}{
		{"zero impressions", 0, 0, 0},
		{"zero impressions with clicks", 3, 0, 0},
		{"simple percentage", 3, 10, 30.00},
		{"rounds to two decimals", 1, 3, 33.33},
		{"full conversion", 10, 10, 100.00},
		{"tiny rate rounds", 1, 10000, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeCTR(tt.clicks, tt.impressions))
		})
	}
}

func TestNormalizeDefaultsAndDerives(t *testing.T) {
	gig := GigRecord{
		ID:          "gig-1",
		Title:       "Logo design",
		Category:    "design",
		Status:      StatusActive,
		Impressions: 10,
		Clicks:      3,
		// Deliberately wrong: Normalize must overwrite it.
		ClickThroughRate: 99.9,
	}

	gig.Normalize()

	assert.NotNil(t, gig.Tags)
	assert.Empty(t, gig.Tags)
	assert.Equal(t, 30.00, gig.ClickThroughRate)
	assert.Equal(t, ComputeTrendingScore(3, 10, 0), gig.TrendingScore)
}

func TestMalformed(t *testing.T) {
	valid := GigRecord{ID: "g", Title: "t", Category: "c", Status: StatusActive}
	assert.Empty(t, valid.Malformed())

	missingID := valid
	missingID.ID = ""
	assert.Equal(t, "missing id", missingID.Malformed())

	missingTitle := valid
	missingTitle.Title = ""
	assert.Equal(t, "missing title", missingTitle.Malformed())

	badStatus := valid
	badStatus.Status = "archived"
	assert.Equal(t, "unknown status", badStatus.Malformed())

	badRating := valid
	badRating.Rating = 5.5
	assert.Equal(t, "rating out of range", badRating.Malformed())

	negative := valid
	negative.Clicks = -1
	assert.Equal(t, "negative counter", negative.Malformed())
}

func TestSearchTextJoinsOptionalFields(t *testing.T) {
	gig := GigRecord{
		Title:       "I will build your website",
		Description: "Responsive sites",
		Category:    "programming",
		Subcategory: "web development",
		Tags:        []string{"html", "css"},
	}

	text := gig.SearchText()
	assert.Contains(t, text, "I will build your website")
	assert.Contains(t, text, "web development")
	assert.Contains(t, text, "html css")

	bare := GigRecord{Title: "Logo", Description: "", Category: "design"}
	assert.Equal(t, "Logo  design", bare.SearchText())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusActive, StatusPaused, StatusRejected, StatusDeleted} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}
