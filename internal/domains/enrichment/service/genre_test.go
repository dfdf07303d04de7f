package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "mediashelf-backend/internal/domains/catalog/model"
)

func TestMatchVocabularyThreeTiers(t *testing.T) {
	vocab := []string{"Science Fiction", "Fantasy"}

	// Tier 1: case-insensitive exact.
	assert.Equal(t, "Science Fiction", matchVocabulary("science fiction", vocab, "Non-Fiction"))

	// Tier 2: substring in either direction, hyphens tolerated.
	assert.Equal(t, "Science Fiction", matchVocabulary("a science-fiction-ish story", vocab, "Non-Fiction"))
	assert.Equal(t, "Fantasy", matchVocabulary("Fant", vocab, "Non-Fiction"))

	// Tier 3: fixed default.
	assert.Equal(t, "Non-Fiction", matchVocabulary("Romance", vocab, "Non-Fiction"))
	assert.Equal(t, "Non-Fiction", matchVocabulary("", vocab, "Non-Fiction"))
}

func TestMatchVocabularyStripsQuotesAndPunctuation(t *testing.T) {
	vocab := []string{"True Crime", "Comedy"}
	assert.Equal(t, "True Crime", matchVocabulary(`"True Crime."`, vocab, "News"))
}

func TestDeduceValidatesClassifierAnswer(t *testing.T) {
	d := NewGenreDeducer(fixedCompleter{answer: "definitely a thriller novel"})

	genre, ok := d.Deduce(context.Background(), catalog.KindBook, GenreHints{Title: "Gone Girl"})
	require.True(t, ok)
	assert.Equal(t, "Thriller", genre)
}

func TestDeduceFallsBackToKindDefault(t *testing.T) {
	d := NewGenreDeducer(fixedCompleter{answer: "Cooking"})

	genre, ok := d.Deduce(context.Background(), catalog.KindBook, GenreHints{Title: "Salt Fat Acid Heat"})
	require.True(t, ok)
	assert.Equal(t, "Non-Fiction", genre)
}

func TestDeduceClassifierFailureIsNotFound(t *testing.T) {
	d := NewGenreDeducer(fixedCompleter{err: errors.New("upstream timeout")})

	_, ok := d.Deduce(context.Background(), catalog.KindBook, GenreHints{Title: "Dune"})
	assert.False(t, ok, "classifier failure leaves the genre unset, never errors")
}

func TestDeduceNilCompleterIsNotFound(t *testing.T) {
	d := NewGenreDeducer(nil)
	_, ok := d.Deduce(context.Background(), catalog.KindMovie, GenreHints{Title: "Arrival"})
	assert.False(t, ok)
}

func TestBuildGenrePromptCarriesHints(t *testing.T) {
	desc := "A linguist is recruited by the military."
	prompt := buildGenrePrompt(catalog.KindMovie, genreVocabularies[catalog.KindMovie], GenreHints{
		Title:       "Arrival",
		Creator:     "Denis Villeneuve",
		Description: &desc,
	})

	assert.Contains(t, prompt, "Arrival")
	assert.Contains(t, prompt, "Denis Villeneuve")
	assert.Contains(t, prompt, "exactly one of")
	assert.Contains(t, prompt, "Science Fiction")
}
