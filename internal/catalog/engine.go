package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/config"
	"github.com/swims/storefront/internal/domain"
)

// BookSource is the remote catalog
type BookSource interface {
	SearchBooks(ctx context.Context, field commerce.SearchField, term string, userID int64) ([]domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
}

// RatingSource resolves a book's average score. ok is false for unrated books.
type RatingSource interface {
	AverageRating(ctx context.Context, bookID int64) (avg float64, ok bool, err error)
}

// Result is an ordered list of books with the ratings that resolved.
// Books missing from Ratings have no rating (or the lookup failed).
type Result struct {
	Books   []domain.Book
	Ratings map[int64]float64
}

// Engine filters, de-duplicates and orders catalog search results
type Engine struct {
	books         BookSource
	ratings       RatingSource
	concurrency   int
	ratingTimeout time.Duration
	logger        *zap.Logger
}

// NewEngine creates a catalog query engine
func NewEngine(books BookSource, ratings RatingSource, cfg config.CatalogConfig, logger *zap.Logger) *Engine {
	concurrency := cfg.RatingConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		books:         books,
		ratings:       ratings,
		concurrency:   concurrency,
		ratingTimeout: cfg.RatingTimeout,
		logger:        logger,
	}
}

// Search runs q against the remote catalog. A failed catalog search aborts
// with an error; a failed rating lookup only leaves that book unrated.
func (e *Engine) Search(ctx context.Context, q Query) (*Result, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return &Result{Books: []domain.Book{}, Ratings: map[int64]float64{}}, nil
	}

	fields := q.Scope.fields()
	pages := make([][]domain.Book, len(fields))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fields {
		i, f := i, f
		g.Go(func() error {
			books, err := e.books.SearchBooks(gctx, f, text, q.UserID)
			if err != nil {
				return fmt.Errorf("search by %s: %w", f, err)
			}
			pages[i] = books
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var union []domain.Book
	for _, p := range pages {
		union = append(union, p...)
	}

	books := dedupe(union)
	books = refine(books, q.Refinement)
	books = filterGenres(books, q.Genres)

	ratings := e.resolveRatings(ctx, books)
	sortBooks(books, ratings, q.Sort)

	return &Result{Books: books, Ratings: ratings}, nil
}

// Browse lists the whole catalog, optionally limited to one genre, in the
// order the catalog returns it
func (e *Engine) Browse(ctx context.Context, genre domain.Genre) (*Result, error) {
	all, err := e.books.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	books := all
	if genre != "" {
		books = filterGenres(all, []domain.Genre{genre})
	}

	return &Result{Books: books, Ratings: e.resolveRatings(ctx, books)}, nil
}

// Suggestions returns autocomplete candidates for a partial query
func (e *Engine) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	books, err := e.books.SearchBooks(ctx, commerce.SearchAny, q, 0)
	if err != nil {
		return nil, err
	}
	return Suggest(q, books), nil
}

// resolveRatings looks every book's rating up concurrently. Each lookup has
// its own timeout and failures are logged and skipped.
func (e *Engine) resolveRatings(ctx context.Context, books []domain.Book) map[int64]float64 {
	type lookup struct {
		avg float64
		ok  bool
	}
	results := make([]lookup, len(books))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, b := range books {
		i, b := i, b
		g.Go(func() error {
			lctx := ctx
			if e.ratingTimeout > 0 {
				var cancel context.CancelFunc
				lctx, cancel = context.WithTimeout(ctx, e.ratingTimeout)
				defer cancel()
			}
			avg, ok, err := e.ratings.AverageRating(lctx, b.ID)
			if err != nil {
				e.logger.Warn("Failed to get average rating",
					zap.Int64("book_id", b.ID),
					zap.Error(err),
				)
				return nil
			}
			results[i] = lookup{avg: avg, ok: ok}
			return nil
		})
	}
	_ = g.Wait()

	ratings := make(map[int64]float64, len(books))
	for i, b := range books {
		if results[i].ok {
			ratings[b.ID] = results[i].avg
		}
	}
	return ratings
}
