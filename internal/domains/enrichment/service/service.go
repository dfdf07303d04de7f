package service

import (
	"time"

	"mediashelf-backend/internal/domains/catalog/repository"
	"mediashelf-backend/internal/domains/enrichment/provider"
)

// Service is the entity detail cache: the memoization layer between the
// catalog rows and the provider clients. The DetailsFetchedAt stamp on each
// row decides cache hits; a nil stamp means the next detail view pays for a
// provider round trip.
//
// Error contract per call:
//   - A rate-limit signal from a provider propagates unmodified and leaves
//     the stamp untouched, so the entity stays eligible for retry.
//   - Every other provider failure was already absorbed below this layer; an
//     all-null patch still stamps, so obscure titles are not re-fetched on
//     every view.
//   - A failed persistence write is logged and the freshly fetched entity is
//     returned anyway with cached=false.
type Service struct {
	books    repository.BookRepository
	movies   repository.MovieRepository
	tvshows  repository.TVShowRepository
	podcasts repository.PodcastRepository
	articles repository.ArticleRepository

	bookProvider    provider.BookProvider
	movieProvider   provider.MovieProvider
	tvshowProvider  provider.TVShowProvider
	podcastProvider provider.PodcastProvider
	articleProvider provider.ArticleProvider

	genres *GenreDeducer
}

func NewService(
	books repository.BookRepository,
	movies repository.MovieRepository,
	tvshows repository.TVShowRepository,
	podcasts repository.PodcastRepository,
	articles repository.ArticleRepository,
	bookProvider provider.BookProvider,
	movieProvider provider.MovieProvider,
	tvshowProvider provider.TVShowProvider,
	podcastProvider provider.PodcastProvider,
	articleProvider provider.ArticleProvider,
	genres *GenreDeducer,
) *Service {
	return &Service{
		books:           books,
		movies:          movies,
		tvshows:         tvshows,
		podcasts:        podcasts,
		articles:        articles,
		bookProvider:    bookProvider,
		movieProvider:   movieProvider,
		tvshowProvider:  tvshowProvider,
		podcastProvider: podcastProvider,
		articleProvider: articleProvider,
		genres:          genres,
	}
}

func stampNow() *time.Time {
	now := time.Now().UTC()
	return &now
}
