package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

type memberService struct {
	interests InterestAPI
	comments  CommentAPI
	logger    *zap.Logger
}

// NewMemberService creates the service behind the member page
func NewMemberService(interests InterestAPI, comments CommentAPI, logger *zap.Logger) *memberService {
	return &memberService{
		interests: interests,
		comments:  comments,
		logger:    logger,
	}
}

func (s *memberService) Interests(ctx context.Context, userID int64) ([]string, error) {
	return s.interests.Interests(ctx, userID)
}

// AddInterest marks a catalog genre as an interest. Adding one the member
// already has is a no-op.
func (s *memberService) AddInterest(ctx context.Context, userID int64, genre string) error {
	g := domain.Genre(strings.TrimSpace(genre))
	if !g.IsValid() {
		return &apperrors.ErrValidation{Field: "genre", Message: "unknown genre " + strconv.Quote(genre)}
	}

	current, err := s.interests.Interests(ctx, userID)
	if err != nil {
		return err
	}
	for _, have := range current {
		if have == string(g) {
			return nil
		}
	}

	if err := s.interests.AddInterest(ctx, userID, string(g)); err != nil {
		return err
	}
	s.logger.Info("Interest added", zap.Int64("user_id", userID), zap.String("genre", string(g)))
	return nil
}

// RemoveInterest drops an interest. Any stored value is accepted so interests
// saved before the genre list was fixed can still be removed.
func (s *memberService) RemoveInterest(ctx context.Context, userID int64, genre string) error {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return &apperrors.ErrValidation{Field: "genre", Message: "genre is required"}
	}
	return s.interests.RemoveInterest(ctx, userID, genre)
}

// Comments lists the reviews the member wrote, each with its book
func (s *memberService) Comments(ctx context.Context, userID int64) ([]domain.Comment, error) {
	return s.comments.UserComments(ctx, userID)
}
