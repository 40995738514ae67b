package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/swims/storefront/internal/domain"
)

// containsFold reports whether s contains substr, ignoring case
func containsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

func field(b domain.Book, s Scope) (string, bool) {
	switch s {
	case ScopeTitle:
		return b.Title, true
	case ScopeAuthor:
		return b.Author, true
	case ScopePublisher:
		return b.Publisher, true
	default:
		return "", false
	}
}

// dedupe drops repeated book ids, keeping the first occurrence
func dedupe(books []domain.Book) []domain.Book {
	seen := make(map[int64]struct{}, len(books))
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}

func refine(books []domain.Book, r Refinement) []domain.Book {
	if r.Text == "" {
		return books
	}
	if _, ok := field(domain.Book{}, r.Scope); !ok {
		return books
	}
	out := books[:0:0]
	for _, b := range books {
		v, _ := field(b, r.Scope)
		if containsFold(v, r.Text) {
			out = append(out, b)
		}
	}
	return out
}

func filterGenres(books []domain.Book, genres []domain.Genre) []domain.Book {
	if len(genres) == 0 {
		return books
	}
	want := make(map[domain.Genre]struct{}, len(genres))
	for _, g := range genres {
		want[g] = struct{}{}
	}
	out := books[:0:0]
	for _, b := range books {
		if _, ok := want[b.Genre]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Suggest collects the titles, authors and publishers that contain q,
// ignoring case, without duplicates and in first-seen order
func Suggest(q string, books []domain.Book) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range books {
		for _, v := range []string{b.Title, b.Author, b.Publisher} {
			if v == "" || !containsFold(v, q) {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
