package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityPort reads a user's activity feed.
type ActivityPort interface {
	List(ctx context.Context, userID int64, limit int) ([]Entry, error)
}

// ActivityAdapter implements ActivityPort using the service container.
type ActivityAdapter struct {
	container mono.ServiceContainer
}

func NewActivityAdapter(container mono.ServiceContainer) *ActivityAdapter {
	return &ActivityAdapter{container: container}
}

func (a *ActivityAdapter) List(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	req := ListActivityRequest{UserID: userID, Limit: limit}
	var resp ListActivityResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-activity", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-activity request failed: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}
