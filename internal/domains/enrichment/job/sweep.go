package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"mediashelf-backend/internal/domains/catalog/model"
	"mediashelf-backend/internal/domains/catalog/repository"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

const defaultSweepBatch = 25

// SweepPayload configures one sweep run.
type SweepPayload struct {
	BatchSize int `json:"batch_size,omitempty"`
}

// Enricher is the detail cache entry point the sweep drives.
type Enricher interface {
	Enrich(ctx context.Context, kind model.Kind, id uuid.UUID) error
}

// SweepHandler enriches entities nobody has viewed yet, oldest first, one
// provider round trip at a time. It is the server-side counterpart of the
// client walker, for rows imported in bulk and never opened.
type SweepHandler struct {
	enricher Enricher
	books    repository.BookRepository
	movies   repository.MovieRepository
	tvshows  repository.TVShowRepository
	podcasts repository.PodcastRepository
	articles repository.ArticleRepository
}

func NewSweepHandler(
	enricher Enricher,
	books repository.BookRepository,
	movies repository.MovieRepository,
	tvshows repository.TVShowRepository,
	podcasts repository.PodcastRepository,
	articles repository.ArticleRepository,
) *SweepHandler {
	return &SweepHandler{
		enricher: enricher,
		books:    books,
		movies:   movies,
		tvshows:  tvshows,
		podcasts: podcasts,
		articles: articles,
	}
}

// ProcessTask runs one sweep. A rate-limit signal ends the run cleanly: the
// remaining rows keep their null stamp and the next scheduled run picks them
// up, so there is no point in letting asynq retry.
func (h *SweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal sweep payload: %w", err)
		}
	}
	if payload.BatchSize <= 0 {
		payload.BatchSize = defaultSweepBatch
	}

	entries, err := h.collect(ctx, payload.BatchSize)
	if err != nil {
		return fmt.Errorf("list unenriched entities: %w", err)
	}
	if len(entries) == 0 {
		log.Debug().Msg("sweep found nothing to enrich")
		return nil
	}

	enriched := 0
	for _, e := range entries {
		if err := h.enricher.Enrich(ctx, e.kind, e.id); err != nil {
			if _, ok := emodel.AsRateLimit(err); ok {
				log.Warn().Err(err).Str("kind", e.kind.String()).
					Int("enriched", enriched).Msg("sweep rate limited, stopping until next run")
				return nil
			}
			log.Warn().Err(err).Str("kind", e.kind.String()).Str("entity_id", e.id.String()).
				Msg("sweep skipped entity")
			continue
		}
		enriched++
	}

	log.Info().Int("enriched", enriched).Msg("sweep finished")
	return nil
}

type sweepEntry struct {
	kind model.Kind
	id   uuid.UUID
}

// collect gathers up to limit never-enriched entities per kind. Ordering
// within a kind is oldest-created first, from the repositories.
func (h *SweepHandler) collect(ctx context.Context, limit int) ([]sweepEntry, error) {
	var entries []sweepEntry

	books, err := h.books.ListUnenriched(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		entries = append(entries, sweepEntry{model.KindBook, b.ID})
	}

	movies, err := h.movies.ListUnenriched(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, m := range movies {
		entries = append(entries, sweepEntry{model.KindMovie, m.ID})
	}

	shows, err := h.tvshows.ListUnenriched(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, s := range shows {
		entries = append(entries, sweepEntry{model.KindTVShow, s.ID})
	}

	podcasts, err := h.podcasts.ListUnenriched(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, p := range podcasts {
		entries = append(entries, sweepEntry{model.KindPodcast, p.ID})
	}

	articles, err := h.articles.ListUnenriched(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		entries = append(entries, sweepEntry{model.KindArticle, a.ID})
	}

	return entries, nil
}
