package orm_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/orm"
)

// widget is a minimal soft-deletable entity for exercising the repository.
type widget struct {
	models.Base
	Name  string
	Price float64

	Tags []widgetTag `gorm:"foreignKey:WidgetID"`
}

// widgetTag has no soft-delete flag, so reads never filter it.
type widgetTag struct {
	ID       uint `gorm:"primaryKey"`
	WidgetID uint
	Label    string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}, &widgetTag{}))
	return db
}

func seedWidgets(t *testing.T, uow *orm.UnitOfWork, names ...string) []*widget {
	t.Helper()
	repo := orm.RepositoryFor[widget](uow)
	ws := make([]*widget, 0, len(names))
	for i, name := range names {
		w := &widget{Name: name, Price: float64(i+1) * 10}
		repo.Add(w)
		ws = append(ws, w)
	}
	_, err := uow.Save(context.Background())
	require.NoError(t, err)
	return ws
}

func TestSaveReturnsAffectedAndClearsPending(t *testing.T) {
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)

	repo.Add(&widget{Name: "a"}, &widget{Name: "b"})
	require.Equal(t, 2, uow.Pending())

	affected, err := uow.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)
	require.Equal(t, 0, uow.Pending())
}

func TestSaveWithNothingStaged(t *testing.T) {
	uow := orm.New(newTestDB(t))

	affected, err := uow.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), affected)
}

func TestSaveIncompleteOnPhantomUpdate(t *testing.T) {
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)

	// Updating a row that was never persisted affects zero rows, which the
	// unit of work must surface rather than silently accept.
	ghost := &widget{Base: models.Base{ID: 4242}, Name: "ghost"}
	repo.Update(ghost)

	affected, err := uow.Save(context.Background())
	require.ErrorIs(t, err, orm.ErrSaveIncomplete)
	require.Equal(t, int64(0), affected)
	require.Equal(t, 0, uow.Pending(), "pending must clear even on failure")
}

func TestGetMissReturnsNilNotError(t *testing.T) {
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)

	w, err := repo.Get(context.Background(), 999)
	require.NoError(t, err)
	require.Nil(t, w)
}

func TestRepositoryForIsMemoizedPerType(t *testing.T) {
	uow := orm.New(newTestDB(t))

	a := orm.RepositoryFor[widget](uow)
	b := orm.RepositoryFor[widget](uow)
	require.Same(t, a, b)
}

func TestSaveSpansRepositories(t *testing.T) {
	uow := orm.New(newTestDB(t))
	widgets := orm.RepositoryFor[widget](uow)
	tags := orm.RepositoryFor[widgetTag](uow)

	w := &widget{Name: "tagged"}
	widgets.Add(w)
	tags.Add(&widgetTag{WidgetID: 1, Label: "new"})

	affected, err := uow.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)
}

func TestSoftDeleteScoping(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)
	ws := seedWidgets(t, uow, "visible", "hidden")

	ws[1].IsDeleted = true
	repo.Update(ws[1])
	_, err := uow.Save(ctx)
	require.NoError(t, err)

	all, err := repo.GetAll(ctx, orm.All())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "visible", all[0].Name)

	n, err := repo.Count(ctx, orm.All())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	exists, err := repo.Exists(ctx, orm.Eq("name", "hidden"))
	require.NoError(t, err)
	require.False(t, exists)

	got, err := repo.Get(ctx, ws[1].ID)
	require.NoError(t, err)
	require.Nil(t, got, "soft-deleted row must be invisible to Get")

	// WithDeleted lifts the scope, which delete flows depend on.
	withDeleted, err := repo.GetAll(ctx, orm.All(), orm.WithDeleted())
	require.NoError(t, err)
	require.Len(t, withDeleted, 2)

	hidden, err := repo.First(ctx, orm.Eq("id", ws[1].ID), orm.WithDeleted())
	require.NoError(t, err)
	require.NotNil(t, hidden)
	require.True(t, hidden.IsDeleted)
}

func TestNonSoftDeletableIsNeverFiltered(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	tags := orm.RepositoryFor[widgetTag](uow)

	tags.Add(&widgetTag{WidgetID: 1, Label: "a"}, &widgetTag{WidgetID: 1, Label: "b"})
	_, err := uow.Save(ctx)
	require.NoError(t, err)

	n, err := tags.Count(ctx, orm.All())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestPredicateLowering(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)
	seedWidgets(t, uow, "a", "b", "c", "d") // prices 10, 20, 30, 40

	inRange, err := repo.GetAll(ctx, orm.And(orm.Gte("price", 20), orm.Lte("price", 30)))
	require.NoError(t, err)
	require.Len(t, inRange, 2)

	// Between is inclusive on both bounds.
	between, err := repo.GetAll(ctx, orm.Between("price", 20, 30))
	require.NoError(t, err)
	require.Len(t, between, 2)

	// Conjunction is order independent.
	p1, err := repo.Count(ctx, orm.And(orm.Eq("name", "b"), orm.Gte("price", 15)))
	require.NoError(t, err)
	p2, err := repo.Count(ctx, orm.And(orm.Gte("price", 15), orm.Eq("name", "b")))
	require.NoError(t, err)
	require.Equal(t, p1, p2)
	require.Equal(t, int64(1), p1)

	// Contradictory criteria match nothing, without error.
	none, err := repo.GetAll(ctx, orm.And(orm.Eq("name", "a"), orm.Eq("name", "b")))
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGetPage(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)
	seedWidgets(t, uow, "a", "b", "c", "d", "e")

	rows, page, err := repo.GetPage(ctx, orm.All(), 2, 2, orm.OrderBy("name ASC"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "c", rows[0].Name)
	require.Equal(t, "d", rows[1].Name)
	require.Equal(t, int64(5), page.Total)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 2, page.PerPage)
}

func TestWithIncludesPreloads(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	widgets := orm.RepositoryFor[widget](uow)
	tags := orm.RepositoryFor[widgetTag](uow)

	w := seedWidgets(t, uow, "parent")[0]
	tags.Add(&widgetTag{WidgetID: w.ID, Label: "x"}, &widgetTag{WidgetID: w.ID, Label: "y"})
	_, err := uow.Save(ctx)
	require.NoError(t, err)

	bare, err := widgets.Get(ctx, w.ID)
	require.NoError(t, err)
	require.Empty(t, bare.Tags)

	loaded, err := widgets.First(ctx, orm.Eq("id", w.ID), orm.WithIncludes("Tags"))
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 2)
}

func TestAddRoundTrips(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)

	w := &widget{Name: "round", Price: 12.5}
	repo.Add(w)
	_, err := uow.Save(ctx)
	require.NoError(t, err)
	require.NotZero(t, w.ID, "commit must assign the identity")
	require.False(t, w.CreatedAt.IsZero())

	got, err := repo.Get(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, w.Name, got.Name)
	require.Equal(t, w.Price, got.Price)
	require.WithinDuration(t, w.CreatedAt, got.CreatedAt, time.Second)
	require.WithinDuration(t, w.ModifiedAt, got.ModifiedAt, time.Second)
}

func TestRemoveHardDeletes(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)
	ws := seedWidgets(t, uow, "doomed")

	repo.Remove(ws[0])
	affected, err := uow.Save(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	gone, err := repo.First(ctx, orm.Eq("id", ws[0].ID), orm.WithDeleted())
	require.NoError(t, err)
	require.Nil(t, gone, "hard delete must remove the row outright")
}

func TestSaveRollsBackAsOneUnit(t *testing.T) {
	ctx := context.Background()
	uow := orm.New(newTestDB(t))
	repo := orm.RepositoryFor[widget](uow)

	good := &widget{Name: "good"}
	dup := &widget{Base: models.Base{ID: 1}, Name: "dup"} // collides with good's key
	repo.Add(good, dup)

	_, err := uow.Save(ctx)
	require.Error(t, err)
	require.False(t, errors.Is(err, orm.ErrSaveIncomplete))

	n, err := repo.Count(ctx, orm.All())
	require.NoError(t, err)
	require.Equal(t, int64(0), n, "failed commit must leave no partial writes")
}
