package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddEntryRequestValidation(t *testing.T) {
	valid := AddEntryRequest{Kind: "book", Title: "Dune", Creator: "Frank Herbert"}
	assert.NoError(t, valid.Validate())

	missingTitle := AddEntryRequest{Kind: "movie"}
	assert.Error(t, missingTitle.Validate())

	badKind := AddEntryRequest{Kind: "vinyl", Title: "Abbey Road"}
	assert.Error(t, badKind.Validate())

	articleNeedsURL := AddEntryRequest{Kind: "article", Title: "Some headline"}
	assert.Error(t, articleNeedsURL.Validate())

	articleWithURL := AddEntryRequest{Kind: "article", URL: "https://nature.example/birds"}
	assert.NoError(t, articleWithURL.Validate())

	badRating := AddEntryRequest{Kind: "book", Title: "Dune", Rating: intPtr(11)}
	assert.Error(t, badRating.Validate())

	badStatus := AddEntryRequest{Kind: "book", Title: "Dune", Status: "paused"}
	assert.Error(t, badStatus.Validate())
}

func TestUpdateEntryRequestValidation(t *testing.T) {
	empty := UpdateEntryRequest{}
	assert.NoError(t, empty.Validate(), "all-nil patch changes nothing and is fine")

	good := UpdateEntryRequest{Status: strPtr("finished"), Rating: intPtr(9)}
	assert.NoError(t, good.Validate())

	badStatus := UpdateEntryRequest{Status: strPtr("lost")}
	assert.Error(t, badStatus.Validate())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusQueued.IsValid())
	assert.True(t, StatusAbandoned.IsValid())
	assert.False(t, Status("paused").IsValid())
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
