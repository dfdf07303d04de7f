package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mediashelf-backend/internal/domains/catalog/model"
)

func (s *Service) GetOrFetchArticle(ctx context.Context, id uuid.UUID) (*model.Article, bool, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if article.DetailsFetchedAt != nil {
		return article, true, nil
	}

	details, err := s.articleProvider.FetchDetails(ctx, article)
	if err != nil {
		return nil, false, err
	}

	model.MergeArticleDetails(article, details)
	s.deduceArticleGenre(ctx, article)
	article.DetailsFetchedAt = stampNow()

	if err := s.articles.SaveEnrichment(ctx, article); err != nil {
		log.Error().Err(err).Str("article_id", article.ID.String()).
			Msg("article enrichment not persisted, serving unsaved result")
	}
	return article, false, nil
}

func (s *Service) ForceRefetchArticle(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.articleProvider.FetchDetails(ctx, article)
	if err != nil {
		return nil, err
	}

	model.ApplyArticleDetails(article, details)
	s.deduceArticleGenre(ctx, article)
	article.DetailsFetchedAt = stampNow()

	if err := s.articles.SaveEnrichment(ctx, article); err != nil {
		log.Error().Err(err).Str("article_id", article.ID.String()).
			Msg("article enrichment not persisted, serving unsaved result")
	}
	return article, nil
}

func (s *Service) deduceArticleGenre(ctx context.Context, article *model.Article) {
	if article.Genre != nil {
		return
	}
	var creator string
	if article.Author != nil {
		creator = *article.Author
	}
	genre, ok := s.genres.Deduce(ctx, model.KindArticle, GenreHints{
		Title:       article.Title,
		Creator:     creator,
		Description: article.Description,
	})
	if ok {
		article.Genre = &genre
	}
}
