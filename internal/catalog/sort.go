package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/swims/storefront/internal/domain"
)

// sortBooks orders books in place. Equal elements keep their input order.
// Books without a rating sort as 0.
func sortBooks(books []domain.Book, ratings map[int64]float64, s Sort) {
	col := collate.New(language.Korean, collate.IgnoreCase)

	compare := func(a, b domain.Book) int {
		switch s.Field {
		case SortRating:
			return compareFloat(ratings[a.ID], ratings[b.ID])
		case SortComments:
			return compareInt(a.CommentCount, b.CommentCount)
		case SortAuthor:
			return col.CompareString(a.Author, b.Author)
		case SortPublisher:
			return col.CompareString(a.Publisher, b.Publisher)
		default:
			return col.CompareString(a.Title, b.Title)
		}
	}

	sort.SliceStable(books, func(i, j int) bool {
		if s.Direction == Desc {
			return compare(books[j], books[i]) < 0
		}
		return compare(books[i], books[j]) < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
