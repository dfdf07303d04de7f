package main

import (
	"github.com/hibiken/asynq"

	"mediashelf-backend/internal/domains/enrichment/job"
	"mediashelf-backend/internal/shared"
	"mediashelf-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	sweep *job.SweepHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sweep: job.NewSweepHandler(
			c.EnrichmentService,
			c.BookRepo,
			c.MovieRepo,
			c.TVShowRepo,
			c.PodcastRepo,
			c.ArticleRepo,
		),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeEnrichmentSweep, h.sweep.ProcessTask)
}
