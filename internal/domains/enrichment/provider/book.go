package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// bookProvider normalizes Open Library (covers, subjects, publisher, reader
// ratings) and Google Books (description, categories, info link) into one
// BookDetails patch. Either source failing on its own never fails the fetch.
type bookProvider struct {
	openLibrary    *upstreamClient
	googleBooks    *upstreamClient
	openLibraryURL string
	coversURL      string
	googleBooksURL string
}

type BookProviderConfig struct {
	OpenLibraryURL string // default https://openlibrary.org
	CoversURL      string // default https://covers.openlibrary.org
	GoogleBooksURL string // default https://www.googleapis.com/books/v1
}

func NewBookProvider(cfg BookProviderConfig, cooldown *CooldownStore) BookProvider {
	if cfg.OpenLibraryURL == "" {
		cfg.OpenLibraryURL = "https://openlibrary.org"
	}
	if cfg.CoversURL == "" {
		cfg.CoversURL = "https://covers.openlibrary.org"
	}
	if cfg.GoogleBooksURL == "" {
		cfg.GoogleBooksURL = "https://www.googleapis.com/books/v1"
	}
	return &bookProvider{
		openLibrary:    newUpstreamClient("openlibrary", 1, 3, cooldown),
		googleBooks:    newUpstreamClient("googlebooks", 1, 3, cooldown),
		openLibraryURL: cfg.OpenLibraryURL,
		coversURL:      cfg.CoversURL,
		googleBooksURL: cfg.GoogleBooksURL,
	}
}

type openLibrarySearchResponse struct {
	Docs []struct {
		Key                 string   `json:"key"`
		CoverID             int64    `json:"cover_i"`
		FirstPublishYear    int      `json:"first_publish_year"`
		Subjects            []string `json:"subject"`
		Publishers          []string `json:"publisher"`
		NumberOfPagesMedian int      `json:"number_of_pages_median"`
		RatingsAverage      float64  `json:"ratings_average"`
		RatingsCount        int      `json:"ratings_count"`
	} `json:"docs"`
}

type googleBooksResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			AverageRating float64  `json:"averageRating"`
			RatingsCount  int      `json:"ratingsCount"`
			InfoLink      string   `json:"infoLink"`
			PageCount     int      `json:"pageCount"`
			Publisher     string   `json:"publisher"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (p *bookProvider) FetchDetails(ctx context.Context, book *catalog.Book) (catalog.BookDetails, error) {
	var details catalog.BookDetails
	var ratings catalog.Ratings

	if err := p.fromOpenLibrary(ctx, book, &details, &ratings); err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.BookDetails{}, err
		}
		log.Warn().Err(err).Str("title", book.Title).Msg("open library contributed nothing")
	}

	if err := p.fromGoogleBooks(ctx, book, &details, &ratings); err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.BookDetails{}, err
		}
		log.Warn().Err(err).Str("title", book.Title).Msg("google books contributed nothing")
	}

	if len(ratings) > 0 {
		details.Ratings = ratings
	}
	return details, nil
}

func (p *bookProvider) fromOpenLibrary(ctx context.Context, book *catalog.Book, details *catalog.BookDetails, ratings *catalog.Ratings) error {
	q := url.Values{}
	q.Set("title", book.Title)
	if book.Author != "" {
		q.Set("author", book.Author)
	}
	q.Set("limit", "1")

	var resp openLibrarySearchResponse
	if err := p.openLibrary.getJSON(ctx, p.openLibraryURL+"/search.json?"+q.Encode(), &resp); err != nil {
		return err
	}
	if len(resp.Docs) == 0 {
		return fmt.Errorf("openlibrary: no match for %q", book.Title)
	}
	doc := resp.Docs[0]

	if doc.Key != "" {
		details.OpenLibraryKey = &doc.Key
	}
	if doc.CoverID != 0 {
		cover := fmt.Sprintf("%s/b/id/%d-L.jpg", p.coversURL, doc.CoverID)
		details.CoverURL = &cover
	}
	if doc.FirstPublishYear != 0 {
		details.PublishedYear = &doc.FirstPublishYear
	}
	if doc.NumberOfPagesMedian != 0 {
		details.Pages = &doc.NumberOfPagesMedian
	}
	if len(doc.Publishers) > 0 {
		details.Publisher = &doc.Publishers[0]
	}
	if len(doc.Subjects) > 0 {
		subjects := doc.Subjects
		if len(subjects) > 10 {
			subjects = subjects[:10]
		}
		details.Subjects = subjects
	}
	if doc.RatingsAverage > 0 {
		score := decimal.NewFromFloat(doc.RatingsAverage).Round(2)
		entry := catalog.RatingEntry{
			Source:  "Open Library",
			Score:   &score,
			Display: score.String() + "/5",
		}
		if doc.RatingsCount > 0 {
			entry.Count = &doc.RatingsCount
		}
		*ratings = append(*ratings, entry)
	}
	return nil
}

func (p *bookProvider) fromGoogleBooks(ctx context.Context, book *catalog.Book, details *catalog.BookDetails, ratings *catalog.Ratings) error {
	query := "intitle:" + book.Title
	if book.Author != "" {
		query += " inauthor:" + book.Author
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("maxResults", "1")

	var resp googleBooksResponse
	if err := p.googleBooks.getJSON(ctx, p.googleBooksURL+"/volumes?"+q.Encode(), &resp); err != nil {
		return err
	}
	if len(resp.Items) == 0 {
		return fmt.Errorf("googlebooks: no match for %q", book.Title)
	}
	item := resp.Items[0]
	info := item.VolumeInfo

	if item.ID != "" {
		details.GoogleBooksID = &item.ID
	}
	if info.Description != "" {
		details.Description = &info.Description
	}
	if info.InfoLink != "" {
		details.InfoLink = &info.InfoLink
	}
	if details.Publisher == nil && info.Publisher != "" {
		details.Publisher = &info.Publisher
	}
	if details.Pages == nil && info.PageCount != 0 {
		details.Pages = &info.PageCount
	}
	if len(info.Categories) > 0 {
		details.Genre = &info.Categories[0]
	}
	if info.AverageRating > 0 {
		score := decimal.NewFromFloat(info.AverageRating).Round(2)
		entry := catalog.RatingEntry{
			Source:  "Google Books",
			Score:   &score,
			Display: score.String() + "/5",
		}
		if info.RatingsCount > 0 {
			entry.Count = &info.RatingsCount
		}
		*ratings = append(*ratings, entry)
	}
	return nil
}
