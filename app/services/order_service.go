package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/jobs"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/logger"
	"github.com/shashiranjanraj/ecommerce/pkg/orm"
	"github.com/shashiranjanraj/ecommerce/pkg/queue"
)

// OrderService places and tracks orders. The clock is injectable so the
// month-window search is testable against a fixed date.
type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, now: time.Now}
}

// WithClock overrides the service clock. Test helper.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// OrderNow places an order for userID. Every requested product must exist
// and be visible; its current price is snapshotted onto the order line so
// later price changes never touch this order. On success the confirmation
// mail job is dispatched.
func (s *OrderService) OrderNow(ctx context.Context, userID uint, req dto.OrderNowRequest) (*models.Order, error) {
	uow := orm.New(s.db)
	orders := orm.RepositoryFor[models.Order](uow)
	products := orm.RepositoryFor[models.Product](uow)

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := products.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}

	order := &models.Order{
		UserID:  userID,
		Address: req.Address,
		City:    req.City,
		Status:  models.OrderPending,
		Items:   items,
	}
	orders.Add(order)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	if err := queue.Dispatch(&jobs.OrderConfirmationJob{OrderID: order.ID}); err != nil {
		// The order is placed; a lost confirmation mail is not a failure.
		logger.Warn("order confirmation dispatch failed", "order_id", order.ID, "error", err)
	}

	// Reload so the response carries the product details behind each line.
	return s.Get(ctx, order.ID)
}

// Get returns an order with its owner and hydrated items, or ErrNotFound.
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	orders := orm.RepositoryFor[models.Order](orm.New(s.db))

	order, err := orders.First(ctx, orm.Eq("id", id),
		orm.WithIncludes("User", "Items.Product"))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return order, nil
}

// Search lists orders matching the request's criteria, newest first. Every
// zero-valued criterion is skipped, so an empty request returns all visible
// orders. A months value of N keeps orders placed since the first day of
// the month N-1 months before the current one; an explicit date range needs
// both ends and intersects with any other criterion, contradictory windows
// just match nothing.
func (s *OrderService) Search(ctx context.Context, req dto.OrderSearchRequest) ([]models.Order, orm.Pagination, error) {
	criteria := []orm.Predicate{orm.All()}
	if req.UserID != 0 {
		criteria = append(criteria, orm.Eq("user_id", req.UserID))
	}
	if req.Status != "" {
		criteria = append(criteria, orm.Eq("status", req.Status))
	}
	if req.City != "" {
		criteria = append(criteria, orm.Eq("city", req.City))
	}
	if req.StartDate != nil && req.EndDate != nil {
		criteria = append(criteria, orm.Between("created_at", *req.StartDate, *req.EndDate))
	}
	if req.Months > 0 {
		criteria = append(criteria, orm.Gte("created_at", monthFloor(s.now().UTC(), req.Months)))
	}

	page, perPage := req.Page, req.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	orders := orm.RepositoryFor[models.Order](orm.New(s.db))
	return orders.GetPage(ctx, orm.And(criteria...), page, perPage,
		orm.OrderBy("created_at DESC"), orm.WithIncludes("Items.Product"))
}

// monthFloor returns midnight UTC on the first day of the month months-1
// before now's month. months=1 floors to the current month. The year/month
// arithmetic is done directly instead of AddDate so day-of-month overflow
// can never shift the result into a neighboring month.
func monthFloor(now time.Time, months int) time.Time {
	year, month := now.Year(), int(now.Month())

	month -= months - 1
	for month < 1 {
		month += 12
		year--
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// ChangeStatus moves the order to status. Any known status may follow any
// other; there is no enforced state machine.
func (s *OrderService) ChangeStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidInput)
	}

	uow := orm.New(s.db)
	orders := orm.RepositoryFor[models.Order](uow)

	order, err := orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	order.Status = status
	order.Touch()
	orders.Update(order)

	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("change order status: %w", err)
	}
	return order, nil
}

// Cancel sets the order to Cancelled.
func (s *OrderService) Cancel(ctx context.Context, id uint) (*models.Order, error) {
	return s.ChangeStatus(ctx, id, models.OrderCancelled)
}
