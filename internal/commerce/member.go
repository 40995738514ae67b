package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Interests lists the genres a member marked as interests
func (c *Client) Interests(ctx context.Context, userID int64) ([]string, error) {
	var genres []string
	err := c.do(ctx, request{
		op:     "list interests",
		method: http.MethodGet,
		path:   fmt.Sprintf(pathInterests, userID),
	}, &genres)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

func (c *Client) AddInterest(ctx context.Context, userID int64, genre string) error {
	return c.do(ctx, request{
		op:     "add interest",
		method: http.MethodPost,
		path:   fmt.Sprintf(pathInterestAdd, userID),
		query:  url.Values{"genre": {genre}},
	}, nil)
}

func (c *Client) RemoveInterest(ctx context.Context, userID int64, genre string) error {
	return c.do(ctx, request{
		op:     "remove interest",
		method: http.MethodDelete,
		path:   fmt.Sprintf(pathInterestDelete, userID),
		query:  url.Values{"genre": {genre}},
	}, nil)
}
