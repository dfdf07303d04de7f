package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	"mediashelf-backend/internal/infrastructure/llm"
)

// GenreHints is the context handed to the classifier when no provider
// returned a structured genre.
type GenreHints struct {
	Title       string
	Creator     string
	Description *string
	Subjects    []string
}

// genreVocabularies is the closed set of categories the classifier may answer
// with, per kind. The deducer never stores anything outside this set.
var genreVocabularies = map[catalog.Kind][]string{
	catalog.KindBook: {
		"Fiction", "Non-Fiction", "Science Fiction", "Fantasy", "Mystery",
		"Thriller", "Romance", "Biography", "History", "Self-Help", "Poetry",
	},
	catalog.KindMovie: {
		"Drama", "Comedy", "Action", "Science Fiction", "Fantasy", "Horror",
		"Thriller", "Documentary", "Animation", "Romance", "Crime",
	},
	catalog.KindTVShow: {
		"Drama", "Comedy", "Action", "Science Fiction", "Fantasy", "Horror",
		"Thriller", "Documentary", "Animation", "Romance", "Crime",
	},
	catalog.KindPodcast: {
		"News", "Comedy", "True Crime", "Technology", "Business", "Health",
		"Society & Culture", "Sports", "Education", "Arts",
	},
	catalog.KindArticle: {
		"Technology", "Science", "Politics", "Business", "Culture", "Health",
		"Sports", "Opinion",
	},
}

var genreDefaults = map[catalog.Kind]string{
	catalog.KindBook:    "Non-Fiction",
	catalog.KindMovie:   "Drama",
	catalog.KindTVShow:  "Drama",
	catalog.KindPodcast: "Society & Culture",
	catalog.KindArticle: "Culture",
}

// GenreDeducer asks a text-completion model to classify an entity into the
// kind's vocabulary. The model is an untrusted oracle: its answer is validated
// by matchVocabulary and any call failure simply yields no genre.
type GenreDeducer struct {
	completer llm.Completer
}

func NewGenreDeducer(completer llm.Completer) *GenreDeducer {
	return &GenreDeducer{completer: completer}
}

// Deduce returns a vocabulary term for the entity, or ok=false when the
// classifier is unavailable or failed. It never returns an error.
func (d *GenreDeducer) Deduce(ctx context.Context, kind catalog.Kind, hints GenreHints) (string, bool) {
	if d == nil || d.completer == nil {
		return "", false
	}
	vocab, ok := genreVocabularies[kind]
	if !ok {
		return "", false
	}

	answer, err := d.completer.Complete(ctx, buildGenrePrompt(kind, vocab, hints))
	if err != nil {
		log.Warn().Err(err).Str("kind", kind.String()).Str("title", hints.Title).
			Msg("genre classifier failed, leaving genre unset")
		return "", false
	}

	return matchVocabulary(answer, vocab, genreDefaults[kind]), true
}

func buildGenrePrompt(kind catalog.Kind, vocab []string, hints GenreHints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Classify this %s into exactly one category.\n", kind)
	fmt.Fprintf(&b, "Title: %s\n", hints.Title)
	if hints.Creator != "" {
		fmt.Fprintf(&b, "By: %s\n", hints.Creator)
	}
	if hints.Description != nil && *hints.Description != "" {
		desc := *hints.Description
		if len(desc) > 400 {
			desc = desc[:400]
		}
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}
	if len(hints.Subjects) > 0 {
		fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(hints.Subjects, ", "))
	}
	fmt.Fprintf(&b, "Answer with exactly one of: %s. Reply with the category name only.", strings.Join(vocab, ", "))
	return b.String()
}

// matchVocabulary validates a classifier answer against the vocabulary in
// three tiers: case-insensitive exact match, then substring containment in
// either direction, then the fixed fallback. Model output is not guaranteed
// to be syntactically exact, so the tiers get progressively more forgiving.
func matchVocabulary(answer string, vocab []string, fallback string) string {
	answer = strings.Trim(strings.TrimSpace(answer), `"'.`)
	if answer == "" {
		return fallback
	}

	for _, term := range vocab {
		if strings.EqualFold(answer, term) {
			return term
		}
	}

	// Hyphenated spellings ("science-fiction-ish") still count as containing
	// the vocabulary term.
	normalized := strings.ToLower(strings.ReplaceAll(answer, "-", " "))
	for _, term := range vocab {
		t := strings.ToLower(strings.ReplaceAll(term, "-", " "))
		if strings.Contains(normalized, t) || strings.Contains(t, normalized) {
			return term
		}
	}

	return fallback
}
