// Package jobs defines the background jobs dispatched through pkg/queue.
package jobs

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/database"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/mail"
	"github.com/shashiranjanraj/ecommerce/pkg/orm"
	"github.com/shashiranjanraj/ecommerce/pkg/queue"
)

// OrderConfirmationName is the registry key for OrderConfirmationJob.
const OrderConfirmationName = "*jobs.OrderConfirmationJob"

// OrderConfirmationJob emails the customer after an order is placed.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

// RegisterAll wires every job type into the queue registry. Call once at
// boot, before workers start.
func RegisterAll() {
	queue.Register(OrderConfirmationName, func() queue.Job { return &OrderConfirmationJob{} })
}

// Handle loads the order with its owner and items, then sends the
// confirmation mail. A missing order is logged and swallowed so the job is
// not retried pointlessly.
func (j *OrderConfirmationJob) Handle() error {
	ctx := context.Background()
	orders := orm.RepositoryFor[models.Order](orm.New(database.DB))

	order, err := orders.First(ctx, orm.Eq("id", j.OrderID),
		orm.WithIncludes("User", "Items.Product"))
	if err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}
	if order == nil || order.User == nil {
		logger.Warn("order confirmation: order or user missing", "order_id", j.OrderID)
		return nil
	}

	body := fmt.Sprintf(
		"<h1>Order #%d confirmed</h1><p>Hi %s, we received your order of %d item(s) totalling %.2f.</p>",
		order.ID, order.User.FirstName, len(order.Items), order.Total(),
	)

	if err := mail.To(order.User.Email).
		Subject(fmt.Sprintf("Order #%d confirmed", order.ID)).
		Body(body).
		Send(); err != nil {
		return fmt.Errorf("order confirmation: send mail: %w", err)
	}

	logger.Info("order confirmation sent", "order_id", order.ID, "email", order.User.Email)
	return nil
}
