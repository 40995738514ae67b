package catalog

import (
	"fmt"

	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/domain"
)

// Scope selects which book fields a text query or refinement matches
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeTitle     Scope = "title"
	ScopeAuthor    Scope = "author"
	ScopePublisher Scope = "publisher"
)

// fields returns the remote search fields the scope fans out to
func (s Scope) fields() []commerce.SearchField {
	switch s {
	case ScopeTitle:
		return []commerce.SearchField{commerce.SearchByTitle}
	case ScopeAuthor:
		return []commerce.SearchField{commerce.SearchByAuthor}
	case ScopePublisher:
		return []commerce.SearchField{commerce.SearchByPublisher}
	default:
		return []commerce.SearchField{commerce.SearchByTitle, commerce.SearchByAuthor, commerce.SearchByPublisher}
	}
}

// ParseScope accepts the four scopes; empty means all
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeTitle, ScopeAuthor, ScopePublisher:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown search scope %q", s)
	}
}

// SortField is the attribute results are ordered by
type SortField string

const (
	SortTitle     SortField = "title"
	SortAuthor    SortField = "author"
	SortPublisher SortField = "publisher"
	SortRating    SortField = "rating"
	SortComments  SortField = "comments"
)

// Direction is ascending or descending
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is a requested ordering. The zero value sorts by title ascending.
type Sort struct {
	Field     SortField
	Direction Direction
}

// ParseSort validates a sort field and direction; empty values take defaults
func ParseSort(field, direction string) (Sort, error) {
	s := Sort{Field: SortField(field), Direction: Direction(direction)}
	if s.Field == "" {
		s.Field = SortTitle
	}
	if s.Direction == "" {
		s.Direction = Asc
	}
	switch s.Field {
	case SortTitle, SortAuthor, SortPublisher, SortRating, SortComments:
	default:
		return Sort{}, fmt.Errorf("unknown sort field %q", field)
	}
	if s.Direction != Asc && s.Direction != Desc {
		return Sort{}, fmt.Errorf("unknown sort direction %q", direction)
	}
	return s, nil
}

// Refinement narrows results to books whose Scope field contains Text. A
// scope other than title, author or publisher filters nothing.
type Refinement struct {
	Scope Scope
	Text  string
}

// Query is one catalog search request
type Query struct {
	Text       string
	Scope      Scope
	Refinement Refinement
	Genres     []domain.Genre
	Sort       Sort
	// UserID is the signed-in viewer, zero when anonymous
	UserID int64
}

// ParseGenres validates genre filters
func ParseGenres(raw []string) ([]domain.Genre, error) {
	genres := make([]domain.Genre, 0, len(raw))
	for _, r := range raw {
		g := domain.Genre(r)
		if !g.IsValid() {
			return nil, fmt.Errorf("unknown genre %q", r)
		}
		genres = append(genres, g)
	}
	return genres, nil
}
