package commerce

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_BookComments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/comments/book/3", r.URL.Path)
		_, _ = w.Write([]byte(`[{"commentId":10,"content":"좋아요","user":{"id":7,"name":"홍길동","cardNumber":"1234"}}]`))
	})

	comments, err := client.BookComments(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(10), comments[0].ID)
	assert.Equal(t, "홍길동", comments[0].User.Name)
	assert.Nil(t, comments[0].Book)
}

func TestClient_UserCommentsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/comments/user/7", r.URL.Path)
		_, _ = w.Write([]byte(`null`))
	})

	comments, err := client.UserComments(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestClient_CommentWrites(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "7", q.Get("userId"))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "첫 리뷰", q.Get("content"))
			_, _ = w.Write([]byte(`{"commentId":11,"content":"첫 리뷰","user":{"id":7,"name":"홍길동"}}`))
		case http.MethodPut:
			assert.Equal(t, "고친 리뷰", q.Get("newContent"))
			_, _ = w.Write([]byte(`{"commentId":11,"content":"고친 리뷰","user":{"id":7,"name":"홍길동"}}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	created, err := client.CreateComment(ctx, 7, 3, "첫 리뷰")
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	updated, err := client.UpdateComment(ctx, 7, 11, "고친 리뷰")
	require.NoError(t, err)
	assert.Equal(t, "고친 리뷰", updated.Content)

	require.NoError(t, client.DeleteComment(ctx, 7, 11))

	assert.Equal(t, []string{
		"POST /api/comments/3",
		"PUT /api/comments/11",
		"DELETE /api/comments/11",
	}, seen)
}

func TestClient_Interests(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path+"?"+r.URL.Query().Get("genre"))
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`["풍자","고전"]`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	ctx := context.Background()

	genres, err := client.Interests(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"풍자", "고전"}, genres)

	require.NoError(t, client.AddInterest(ctx, 7, "동화"))
	require.NoError(t, client.RemoveInterest(ctx, 7, "고전"))

	assert.Equal(t, []string{
		"GET /member/MyPage/7/interests?",
		"POST /member/MyPage/7/add_interests?동화",
		"DELETE /member/MyPage/7/delete_interests?고전",
	}, seen)
}
