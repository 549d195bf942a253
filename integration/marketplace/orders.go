package marketplace

import (
	"context"
	"fmt"

	"github.com/pharmakit/backoffice/core/cache"
)

type updateOrderStatusRequest struct {
	OrderStatusID int  `json:"orderStatusId"`
	AcceptedByID  *int `json:"acceptedById"`
}

// Orders returns all orders, cached with per-item tags plus the order list
// tag so a status update refreshes the listing.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	return cache.Fetch(ctx, c.cache, epOrders, nil, func(ctx context.Context) ([]Order, []cache.Tag, error) {
		var orders []Order
		if err := c.api.Get(ctx, "/orders", &orders); err != nil {
			return nil, nil, err
		}
		tags := make([]cache.Tag, 0, len(orders)+1)
		for _, o := range orders {
			tags = append(tags, cache.NewTag(TagOrder, o.ID))
		}
		return orders, append(tags, cache.List(TagOrder)), nil
	})
}

// UpdateOrderStatus moves an order to a new status, recording the admin who
// accepted it, and invalidates the order's tags.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, statusID int, acceptedBy *int) (Order, error) {
	return cache.Exec(ctx, c.cache, func(ctx context.Context) (Order, error) {
		var updated Order
		err := c.api.Put(ctx, fmt.Sprintf("/orders/%d/status", orderID), updateOrderStatusRequest{
			OrderStatusID: statusID,
			AcceptedByID:  acceptedBy,
		}, &updated)
		return updated, err
	}, func(result Order, err error) []cache.Tag {
		if err != nil {
			return nil
		}
		return []cache.Tag{cache.NewTag(TagOrder, orderID), cache.List(TagOrder)}
	})
}
