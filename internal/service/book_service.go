package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// MaxCommentLength caps a review, counted in characters
const MaxCommentLength = 1000

type bookService struct {
	books    BookDetailAPI
	comments CommentAPI
	logger   *zap.Logger
}

// NewBookService creates the service behind the book page and its reviews
func NewBookService(books BookDetailAPI, comments CommentAPI, logger *zap.Logger) *bookService {
	return &bookService{
		books:    books,
		comments: comments,
		logger:   logger,
	}
}

// Detail loads a book with its average rating and reviews. The three lookups
// run concurrently. A failed rating lookup leaves Rating nil; the book and
// its reviews are required.
func (s *bookService) Detail(ctx context.Context, bookID int64) (*BookDetail, error) {
	var (
		book     *domain.Book
		rating   *float64
		comments []domain.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		books, err := s.books.ListBooks(gctx)
		if err != nil {
			return err
		}
		for i := range books {
			if books[i].ID == bookID {
				book = &books[i]
				return nil
			}
		}
		return &apperrors.ErrNotFound{Resource: "book", ID: strconv.FormatInt(bookID, 10)}
	})
	g.Go(func() error {
		avg, ok, err := s.books.AverageRating(gctx, bookID)
		if err != nil {
			s.logger.Warn("Failed to get average rating",
				zap.Int64("book_id", bookID),
				zap.Error(err),
			)
			return nil
		}
		if ok {
			rating = &avg
		}
		return nil
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.BookComments(gctx, bookID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}
	return &BookDetail{
		BookView: BookView{Book: *book, Rating: rating},
		Comments: comments,
	}, nil
}

func (s *bookService) Comments(ctx context.Context, bookID int64) ([]domain.Comment, error) {
	return s.comments.BookComments(ctx, bookID)
}

// AddComment posts a review on a book
func (s *bookService) AddComment(ctx context.Context, userID, bookID int64, content string) (*domain.Comment, error) {
	content, err := validateComment(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.CreateComment(ctx, userID, bookID, content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Comment created",
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID),
		zap.Int64("comment_id", comment.ID),
	)
	return comment, nil
}

// EditComment replaces the text of the caller's review
func (s *bookService) EditComment(ctx context.Context, userID, commentID int64, content string) (*domain.Comment, error) {
	content, err := validateComment(content)
	if err != nil {
		return nil, err
	}
	return s.comments.UpdateComment(ctx, userID, commentID, content)
}

func (s *bookService) DeleteComment(ctx context.Context, userID, commentID int64) error {
	if err := s.comments.DeleteComment(ctx, userID, commentID); err != nil {
		return err
	}

	s.logger.Info("Comment deleted",
		zap.Int64("user_id", userID),
		zap.Int64("comment_id", commentID),
	)
	return nil
}

func validateComment(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", &apperrors.ErrValidation{Field: "content", Message: "comment is empty"}
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", &apperrors.ErrValidation{
			Field:   "content",
			Message: "comment is longer than " + strconv.Itoa(MaxCommentLength) + " characters",
		}
	}
	return content, nil
}
