package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/catalog"
	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/config"
	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// stubCatalog answers every search with the same books. Searches for "slow"
// block until their context is cancelled.
type stubCatalog struct {
	books   []domain.Book
	ratings map[int64]float64
	started chan struct{}
}

func (s *stubCatalog) SearchBooks(ctx context.Context, field commerce.SearchField, term string, userID int64) ([]domain.Book, error) {
	if term == "slow" {
		s.started <- struct{}{}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.books, nil
}

func (s *stubCatalog) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.books, nil
}

func (s *stubCatalog) AverageRating(ctx context.Context, bookID int64) (float64, bool, error) {
	r, ok := s.ratings[bookID]
	return r, ok, nil
}

func newTestCatalog(stub *stubCatalog, fc *fakeCommerce) *catalogService {
	engine := catalog.NewEngine(stub, stub, config.CatalogConfig{RatingConcurrency: 4, RatingTimeout: time.Second}, zap.NewNop())
	return NewCatalogService(engine, catalog.NewTracker(), fc, fc, zap.NewNop())
}

func TestCatalogService_Search(t *testing.T) {
	stub := &stubCatalog{
		books: []domain.Book{
			{ID: 1, Title: "Animal Farm", Author: "George Orwell", Genre: domain.GenreSatire},
			{ID: 2, Title: "1984", Author: "George Orwell", Genre: domain.GenreDystopia},
		},
		ratings: map[int64]float64{2: 4.5},
	}
	fc := &fakeCommerce{}
	s := newTestCatalog(stub, fc)

	books, err := s.Search(context.Background(), "tab-1", 7, SearchParams{
		Query: "Orwell",
		Scope: "author",
		Sort:  "rating",
		Order: "desc",
	})
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, int64(2), books[0].ID)
	require.NotNil(t, books[0].Rating)
	assert.Equal(t, 4.5, *books[0].Rating)
	assert.Nil(t, books[1].Rating, "missing rating stays nil")

	assert.Equal(t, []string{"Orwell"}, fc.searches, "history is recorded for signed-in users")
}

func TestCatalogService_SearchAnonymousSkipsHistory(t *testing.T) {
	stub := &stubCatalog{books: []domain.Book{{ID: 1, Title: "1984"}}}
	fc := &fakeCommerce{}
	s := newTestCatalog(stub, fc)

	_, err := s.Search(context.Background(), "", 0, SearchParams{Query: "1984", Genres: []string{"all"}})
	require.NoError(t, err)
	assert.Empty(t, fc.searches)
}

func TestCatalogService_SearchValidation(t *testing.T) {
	s := newTestCatalog(&stubCatalog{}, &fakeCommerce{})

	tests := []struct {
		name   string
		params SearchParams
		field  string
	}{
		{"scope", SearchParams{Query: "x", Scope: "isbn"}, "scope"},
		{"sort field", SearchParams{Query: "x", Sort: "price"}, "sort"},
		{"sort order", SearchParams{Query: "x", Order: "up"}, "sort"},
		{"genre", SearchParams{Query: "x", Genres: []string{"romance"}}, "genre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Search(context.Background(), "", 0, tt.params)
			var verr *apperrors.ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCatalogService_SupersededSearch(t *testing.T) {
	stub := &stubCatalog{
		books:   []domain.Book{{ID: 1, Title: "1984"}},
		started: make(chan struct{}, 1),
	}
	s := newTestCatalog(stub, &fakeCommerce{})

	staleErr := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "tab-1", 7, SearchParams{Query: "slow", Scope: "title"})
		staleErr <- err
	}()
	<-stub.started

	books, err := s.Search(context.Background(), "tab-1", 7, SearchParams{Query: "1984", Scope: "title"})
	require.NoError(t, err)
	assert.Len(t, books, 1)

	select {
	case err := <-staleErr:
		assert.True(t, IsSuperseded(err))
	case <-time.After(2 * time.Second):
		t.Fatal("stale search did not finish")
	}
}

func TestCatalogService_AnonymousSearchesDoNotSupersedeEachOther(t *testing.T) {
	stub := &stubCatalog{
		books:   []domain.Book{{ID: 1, Title: "1984"}},
		started: make(chan struct{}, 1),
	}
	s := newTestCatalog(stub, &fakeCommerce{})

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()

	errA := make(chan error, 1)
	go func() {
		_, err := s.Search(ctxA, "", 0, SearchParams{Query: "slow", Scope: "title"})
		errA <- err
	}()
	<-stub.started

	books, err := s.Search(context.Background(), "", 0, SearchParams{Query: "1984", Scope: "title"})
	require.NoError(t, err)
	assert.Len(t, books, 1)

	select {
	case err := <-errA:
		t.Fatalf("first visitor's search ended early: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancelA()
	select {
	case err := <-errA:
		require.Error(t, err)
		assert.False(t, IsSuperseded(err))
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop after cancel")
	}
}

func TestTrackerKey(t *testing.T) {
	tests := []struct {
		name    string
		session string
		userID  int64
		key     string
		tracked bool
	}{
		{"anonymous without session", "", 0, "", false},
		{"anonymous blank session", "  ", 0, "", false},
		{"anonymous with session", "tab-1", 0, "0:tab-1", true},
		{"signed in without session", "", 7, "7:", true},
		{"signed in with session", "tab-1", 7, "7:tab-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, tracked := trackerKey(tt.session, tt.userID)
			assert.Equal(t, tt.tracked, tracked)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestCatalogService_Browse(t *testing.T) {
	stub := &stubCatalog{books: []domain.Book{
		{ID: 1, Title: "Animal Farm", Genre: domain.GenreSatire},
		{ID: 2, Title: "1984", Genre: domain.GenreDystopia},
	}}
	s := newTestCatalog(stub, &fakeCommerce{})

	all, err := s.Browse(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	satire, err := s.Browse(context.Background(), string(domain.GenreSatire))
	require.NoError(t, err)
	require.Len(t, satire, 1)
	assert.Equal(t, int64(1), satire[0].ID)

	_, err = s.Browse(context.Background(), "romance")
	var verr *apperrors.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestCatalogService_SubmitRating(t *testing.T) {
	fc := &fakeCommerce{}
	s := newTestCatalog(&stubCatalog{}, fc)

	for _, score := range []int{0, 6, -1} {
		var verr *apperrors.ErrValidation
		assert.ErrorAs(t, s.SubmitRating(context.Background(), 7, 1, score), &verr)
	}
	require.NoError(t, s.SubmitRating(context.Background(), 7, 1, 5))
	assert.Equal(t, []int{5}, fc.ratings)
}
