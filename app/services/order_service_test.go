package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}
}

func TestMonthFloor(t *testing.T) {
	dec16 := time.Date(2025, time.December, 16, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		months int
		want   time.Time
	}{
		{1, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)},
		{5, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{12, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{13, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := monthFloor(dec16, tc.months)
		require.Equal(t, tc.want, got, "months=%d", tc.months)
	}

	// Crossing a year boundary from January.
	jan15 := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t,
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		monthFloor(jan15, 2))

	// The 31st must not bleed into a neighboring month the way day-wise
	// date arithmetic can.
	mar31 := time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC)
	require.Equal(t,
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		monthFloor(mar31, 2))
}

func TestOrderNowSnapshotsPrices(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db)

	u := createUser(t, db, "shopper")
	p1 := createProduct(t, db, "Kettle", 30)
	p2 := createProduct(t, db, "Mug", 5)

	order, err := svc.OrderNow(ctx, u.ID, dto.OrderNowRequest{
		Address: "1 Main St",
		City:    "Pune",
		Items: []dto.OrderItemRequest{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: p2.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderPending, order.Status)
	require.Len(t, order.Items, 2)
	require.Equal(t, 50.0, order.Total())

	// A later price change must not touch the placed order.
	require.NoError(t, db.Model(p2).Update("price", 99).Error)
	reloaded, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, 50.0, reloaded.Total())
}

func TestOrderNowUnknownProduct(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db)
	u := createUser(t, db, "shopper")

	_, err := svc.OrderNow(ctx, u.ID, dto.OrderNowRequest{
		Address: "1 Main St",
		City:    "Pune",
		Items:   []dto.OrderItemRequest{{ProductID: 404, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)

	// Nothing may have been written.
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestOrderNowRejectsSoftDeletedProduct(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db)
	u := createUser(t, db, "shopper")

	p := createProduct(t, db, "Ghost", 10)
	require.NoError(t, db.Model(p).Update("is_deleted", true).Error)

	_, err := svc.OrderNow(ctx, u.ID, dto.OrderNowRequest{
		Address: "1 Main St",
		City:    "Pune",
		Items:   []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status models.OrderStatus, city string, createdAt time.Time) *models.Order {
	t.Helper()
	o := &models.Order{
		Base:   models.Base{CreatedAt: createdAt, ModifiedAt: createdAt},
		UserID: userID,
		City:   city,
		Status: status,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func TestOrderSearchComposesCriteria(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db).WithClock(fixedClock(2025, time.December, 16))

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	seedOrder(t, db, alice.ID, models.OrderPending, "Pune",
		time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, alice.ID, models.OrderShipped, "Pune",
		time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, alice.ID, models.OrderPending, "Mumbai",
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, bob.ID, models.OrderPending, "Pune",
		time.Date(2025, time.November, 25, 0, 0, 0, 0, time.UTC))

	// Empty request returns everything, newest first.
	all, page, err := svc.Search(ctx, dto.OrderSearchRequest{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, int64(4), page.Total)
	require.Equal(t, "Mumbai", all[3].City)

	// Single criterion.
	mine, _, err := svc.Search(ctx, dto.OrderSearchRequest{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, mine, 3)

	// months=5 with the clock on 2025-12-16 floors to 2025-08-01, so the
	// July order falls out.
	recent, _, err := svc.Search(ctx, dto.OrderSearchRequest{UserID: alice.ID, Months: 5})
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// months=1 keeps only the current month.
	thisMonth, _, err := svc.Search(ctx, dto.OrderSearchRequest{Months: 1})
	require.NoError(t, err)
	require.Empty(t, thisMonth)

	// All criteria together.
	narrow, _, err := svc.Search(ctx, dto.OrderSearchRequest{
		UserID: alice.ID,
		Status: string(models.OrderShipped),
		City:   "Pune",
		Months: 5,
	})
	require.NoError(t, err)
	require.Len(t, narrow, 1)
	require.Equal(t, models.OrderShipped, narrow[0].Status)
}

func TestOrderSearchDateRange(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db).WithClock(fixedClock(2025, time.December, 16))
	u := createUser(t, db, "ranger")

	seedOrder(t, db, u.ID, models.OrderPending, "Pune",
		time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, u.ID, models.OrderPending, "Pune",
		time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, u.ID, models.OrderPending, "Pune",
		time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC))

	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	rows, _, err := svc.Search(ctx, dto.OrderSearchRequest{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// A lone bound is ignored; the range needs both ends.
	rows, _, err = svc.Search(ctx, dto.OrderSearchRequest{StartDate: &start})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Range and months together intersect; here the range lies entirely
	// before the months floor, so nothing matches.
	rows, _, err = svc.Search(ctx, dto.OrderSearchRequest{
		StartDate: &start, EndDate: &end, Months: 2,
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestOrderSearchPaginates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db)
	u := createUser(t, db, "pager")

	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, db, u.ID, models.OrderPending, "Pune", base.AddDate(0, 0, i))
	}

	rows, page, err := svc.Search(ctx, dto.OrderSearchRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(5), page.Total)
	require.Equal(t, 2, page.Page)
}

func TestChangeStatusIsUnrestricted(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewOrderService(db)
	u := createUser(t, db, "mover")
	o := seedOrder(t, db, u.ID, models.OrderDelivered, "Pune", time.Now().UTC())

	// Delivered back to Pending is allowed; there is no state machine.
	updated, err := svc.ChangeStatus(ctx, o.ID, models.OrderPending)
	require.NoError(t, err)
	require.Equal(t, models.OrderPending, updated.Status)

	_, err = svc.ChangeStatus(ctx, o.ID, models.OrderStatus("Lost"))
	require.ErrorIs(t, err, ErrInvalidInput)

	cancelled, err := svc.Cancel(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderCancelled, cancelled.Status)
}

func TestOrderGetMissing(t *testing.T) {
	svc := NewOrderService(newTestDB(t))
	_, err := svc.Get(context.Background(), 9999)
	require.ErrorIs(t, err, ErrNotFound)
}
