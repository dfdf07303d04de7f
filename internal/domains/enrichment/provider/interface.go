package provider

import (
	"context"

	catalog "mediashelf-backend/internal/domains/catalog/model"
)

// Provider clients wrap one or more upstream metadata APIs per entity kind
// and normalize their responses into the catalog's details patch types.
//
// Contract shared by all of them:
//   - Upstream quota exhaustion surfaces as *model.RateLimitError and nothing
//     else does.
//   - Every other upstream failure (network, bad payload, not-found) is
//     absorbed: the client logs it and returns whatever the remaining sources
//     produced, down to an empty patch. Partial outages never become errors.
//   - Genre is only set from structured upstream data, never guessed; the
//     fallback deducer is the caller's decision.

type BookProvider interface {
	FetchDetails(ctx context.Context, book *catalog.Book) (catalog.BookDetails, error)
}

type MovieProvider interface {
	FetchDetails(ctx context.Context, movie *catalog.Movie) (catalog.MovieDetails, error)
}

type TVShowProvider interface {
	FetchDetails(ctx context.Context, show *catalog.TVShow) (catalog.TVShowDetails, error)
}

type PodcastProvider interface {
	FetchDetails(ctx context.Context, podcast *catalog.Podcast) (catalog.PodcastDetails, error)
}

type ArticleProvider interface {
	FetchDetails(ctx context.Context, article *catalog.Article) (catalog.ArticleDetails, error)
}
