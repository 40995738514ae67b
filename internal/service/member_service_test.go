package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

func TestMemberService_Interests(t *testing.T) {
	fc := &fakeCommerce{interests: []string{string(domain.GenreClassic)}}
	s := NewMemberService(fc, fc, zap.NewNop())
	ctx := context.Background()

	got, err := s.Interests(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{string(domain.GenreClassic)}, got)

	require.NoError(t, s.AddInterest(ctx, 7, string(domain.GenreSatire)))
	require.NoError(t, s.AddInterest(ctx, 7, string(domain.GenreClassic)), "existing interest is a no-op")
	assert.Equal(t, []string{string(domain.GenreSatire)}, fc.addedInterests)

	var verr *apperrors.ErrValidation
	require.ErrorAs(t, s.AddInterest(ctx, 7, "romance"), &verr)
	assert.Equal(t, "genre", verr.Field)

	require.NoError(t, s.RemoveInterest(ctx, 7, "옛날 관심사"))
	assert.Equal(t, []string{"옛날 관심사"}, fc.removedInterest, "removal accepts any stored value")
	require.ErrorAs(t, s.RemoveInterest(ctx, 7, " "), &verr)
}

func TestMemberService_Comments(t *testing.T) {
	fc := &fakeCommerce{comments: []domain.Comment{
		{ID: 1, Content: "mine", User: domain.CommentAuthor{ID: 7}, Book: &bookA},
		{ID: 2, Content: "theirs", User: domain.CommentAuthor{ID: 8}, Book: &bookB},
	}}
	s := NewMemberService(fc, fc, zap.NewNop())

	comments, err := s.Comments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "1984", comments[0].Book.Title)
}
