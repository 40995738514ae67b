package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/catalog"
	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// ErrSuperseded is returned when a newer search from the same session
// started before this one finished
var ErrSuperseded = &apperrors.ErrConflict{Message: "superseded by a newer search"}

// MinRating and MaxRating bound a rating score
const (
	MinRating = 1
	MaxRating = 5
)

type catalogService struct {
	engine  *catalog.Engine
	tracker *catalog.Tracker
	history SearchHistoryAPI
	ratings RatingAPI
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(engine *catalog.Engine, tracker *catalog.Tracker, history SearchHistoryAPI, ratings RatingAPI, logger *zap.Logger) *catalogService {
	return &catalogService{
		engine:  engine,
		tracker: tracker,
		history: history,
		ratings: ratings,
		logger:  logger,
	}
}

// Search runs a catalog query. session identifies the browser tab issuing
// searches; a search that finishes after a newer one from the same session
// started returns ErrSuperseded. Anonymous searches without a session are
// never tracked since nothing ties them to one caller.
func (s *catalogService) Search(ctx context.Context, session string, userID int64, p SearchParams) ([]BookView, error) {
	q, err := buildQuery(p)
	if err != nil {
		return nil, err
	}
	q.UserID = userID

	key, tracked := trackerKey(session, userID)
	var ticket catalog.Ticket
	if tracked {
		ctx, ticket = s.tracker.Begin(ctx, key)
		defer s.tracker.End(ticket)
	}

	res, err := s.engine.Search(ctx, q)
	if tracked && !s.tracker.Current(ticket) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	if userID != 0 && strings.TrimSpace(q.Text) != "" {
		if err := s.history.RecordSearch(ctx, userID, q.Text); err != nil {
			s.logger.Warn("Failed to record search history",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return bookViews(res), nil
}

// Browse lists the catalog for the home page. genre "all" or empty means every genre.
func (s *catalogService) Browse(ctx context.Context, genre string) ([]BookView, error) {
	var g domain.Genre
	if genre != "" && genre != "all" {
		g = domain.Genre(genre)
		if !g.IsValid() {
			return nil, &apperrors.ErrValidation{Field: "genre", Message: "unknown genre " + strconv.Quote(genre)}
		}
	}

	res, err := s.engine.Browse(ctx, g)
	if err != nil {
		return nil, err
	}
	return bookViews(res), nil
}

func (s *catalogService) Suggestions(ctx context.Context, q string) ([]string, error) {
	return s.engine.Suggestions(ctx, q)
}

// SubmitRating forwards a 1 to 5 score for a book
func (s *catalogService) SubmitRating(ctx context.Context, userID, bookID int64, score int) error {
	if score < MinRating || score > MaxRating {
		return &apperrors.ErrValidation{Field: "score", Message: "score must be between 1 and 5"}
	}
	if err := s.ratings.SubmitRating(ctx, userID, bookID, score); err != nil {
		return err
	}

	s.logger.Info("Rating submitted",
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID),
		zap.Int("score", score),
	)
	return nil
}

func buildQuery(p SearchParams) (catalog.Query, error) {
	scope, err := catalog.ParseScope(p.Scope)
	if err != nil {
		return catalog.Query{}, &apperrors.ErrValidation{Field: "scope", Message: err.Error(), Err: err}
	}
	sort, err := catalog.ParseSort(p.Sort, p.Order)
	if err != nil {
		return catalog.Query{}, &apperrors.ErrValidation{Field: "sort", Message: err.Error(), Err: err}
	}

	var raw []string
	for _, g := range p.Genres {
		if g != "" && g != "all" {
			raw = append(raw, g)
		}
	}
	genres, err := catalog.ParseGenres(raw)
	if err != nil {
		return catalog.Query{}, &apperrors.ErrValidation{Field: "genre", Message: err.Error(), Err: err}
	}

	return catalog.Query{
		Text:  p.Query,
		Scope: scope,
		Refinement: catalog.Refinement{
			Scope: catalog.Scope(p.RefineScope),
			Text:  strings.TrimSpace(p.Refine),
		},
		Genres: genres,
		Sort:   sort,
	}, nil
}

// trackerKey scopes supersession to one caller. ok is false for an anonymous
// caller that sent no session.
func trackerKey(session string, userID int64) (key string, ok bool) {
	session = strings.TrimSpace(session)
	if session == "" && userID == 0 {
		return "", false
	}
	return strconv.FormatInt(userID, 10) + ":" + session, true
}

func bookViews(res *catalog.Result) []BookView {
	views := make([]BookView, 0, len(res.Books))
	for _, b := range res.Books {
		v := BookView{Book: b}
		if r, ok := res.Ratings[b.ID]; ok {
			r := r
			v.Rating = &r
		}
		views = append(views, v)
	}
	return views
}

// IsSuperseded reports whether err came from a stale search
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
