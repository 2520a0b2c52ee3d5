package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarUsersScoresOverlap(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("alice", "design", "s1")
	g.AddInteraction("alice", "marketing", "s2")
	g.AddInteraction("bob", "design", "s1")
	g.AddInteraction("carol", "writing", "s9")

	got := g.SimilarUsers("alice")
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].UserID)
	// one shared category plus one shared seller
	assert.InDelta(t, 2*1+1.5*1, got[0].Score, 1e-9)
}

func TestSimilarUsersSortedDescending(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("alice", "design", "s1")
	g.AddInteraction("alice", "video", "s2")

	// bob shares both categories, carol only one
	g.AddInteraction("bob", "design", "s7")
	g.AddInteraction("bob", "video", "s8")
	g.AddInteraction("carol", "design", "s9")

	got := g.SimilarUsers("alice")
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].UserID)
	assert.Equal(t, "carol", got[1].UserID)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestSimilarUsersNotSymmetricInGeneral(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("alice", "design", "s1")
	g.AddInteraction("bob", "design", "s1")
	g.AddInteraction("bob", "video", "s2")
	g.AddInteraction("carol", "video", "s2")
	g.AddInteraction("carol", "music", "s3")

	fromAlice := g.SimilarUsers("alice")
	fromCarol := g.SimilarUsers("carol")

	// alice never overlaps carol, but both overlap bob
	require.Len(t, fromAlice, 1)
	assert.Equal(t, "bob", fromAlice[0].UserID)
	require.Len(t, fromCarol, 1)
	assert.Equal(t, "bob", fromCarol[0].UserID)
}

func TestSimilarUsersUnknownUser(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("alice", "design", "s1")

	assert.Empty(t, g.SimilarUsers("nobody"))
}

func TestSimilarUsersExcludesSelfAndZeroOverlap(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("alice", "design", "s1")
	g.AddInteraction("bob", "music", "s2")

	assert.Empty(t, g.SimilarUsers("alice"))
}

func TestAddInteractionIdempotent(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("alice", "design", "s1")
	g.AddInteraction("alice", "design", "s1")
	g.AddInteraction("bob", "design", "s1")

	got := g.SimilarUsers("bob")
	require.Len(t, got, 1)
	assert.InDelta(t, 3.5, got[0].Score, 1e-9)
}

func TestSimilarUsersTiesKeepRegistrationOrder(t *testing.T) {
	g := NewUserGigGraph()
	g.AddInteraction("me", "design", "s1")
	g.AddInteraction("second", "design", "s9")
	g.AddInteraction("first", "design", "s8")

	got := g.SimilarUsers("me")
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].UserID)
	assert.Equal(t, "first", got[1].UserID)
}
