package services

import (
	"context"
	"testing"

	"github.com/Edmundtutu/foody-sub002/configs"
	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/Edmundtutu/foody-sub002/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. One connection keeps the
// in-memory schema alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.Migrate(db))
	require.NoError(t, configs.SeedLookups(db))
	return db
}

type world struct {
	db       *gorm.DB
	owner    entity.User
	stranger entity.User
	customer entity.User
	rest     entity.Restaurant
	other    entity.Restaurant

	combos     *repository.ComboRepository
	catalog    *repository.CatalogRepository
	selections *repository.ComboSelectionRepository
	policy     *ComboPolicy
	structure  *ComboStructureService
	pricing    *ComboPricingService
	comboSvc   *ComboService
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := newTestDB(t)
	w := &world{db: db}

	w.owner = entity.User{Email: "owner@example.com", Role: entity.RoleOwner}
	w.stranger = entity.User{Email: "stranger@example.com", Role: entity.RoleOwner}
	w.customer = entity.User{Email: "customer@example.com", Role: entity.RoleCustomer}
	require.NoError(t, db.Create(&w.owner).Error)
	require.NoError(t, db.Create(&w.stranger).Error)
	require.NoError(t, db.Create(&w.customer).Error)

	w.rest = entity.Restaurant{Name: "Rolex Corner", UserID: w.owner.ID}
	w.other = entity.Restaurant{Name: "Elsewhere", UserID: w.stranger.ID}
	require.NoError(t, db.Create(&w.rest).Error)
	require.NoError(t, db.Create(&w.other).Error)

	rests := repository.NewRestaurantRepository(db)
	w.combos = repository.NewComboRepository(db)
	w.catalog = repository.NewCatalogRepository(db)
	w.selections = repository.NewComboSelectionRepository(db)
	w.policy = NewComboPolicy(rests)
	w.structure = NewComboStructureService(db, w.combos, w.catalog, w.policy)
	w.pricing = NewComboPricingService(w.combos)
	w.comboSvc = NewComboService(db, w.combos, rests, w.structure, w.policy)
	return w
}

func (w *world) ownerActor() Actor    { return Actor{UserID: w.owner.ID, Role: entity.RoleOwner} }
func (w *world) customerActor() Actor { return Actor{UserID: w.customer.ID, Role: entity.RoleCustomer} }

func (w *world) dish(t *testing.T, restID uint, name string, price int64, opts ...entity.DishOption) entity.Dish {
	t.Helper()
	d := entity.Dish{RestaurantID: restID, Name: name, Price: price, Available: true, Options: opts}
	require.NoError(t, w.db.Create(&d).Error)
	return d
}

func (w *world) category(t *testing.T, restID uint, name string) entity.Category {
	t.Helper()
	c := entity.Category{RestaurantID: restID, Name: name}
	require.NoError(t, w.db.Create(&c).Error)
	return c
}

func (w *world) combo(t *testing.T, mode entity.PricingMode, base int64, groups ...GroupInput) *entity.Combo {
	t.Helper()
	req := &CreateComboReq{RestaurantID: w.rest.ID, Name: "Lunch Combo", PricingMode: mode, BasePrice: base}
	if len(groups) > 0 {
		req.Groups = &groups
	}
	c, err := w.comboSvc.Create(context.Background(), w.ownerActor(), req)
	require.NoError(t, err)
	return c
}

func idPtr(id uint) *uint { return &id }

func ids(v ...uint) *[]uint { return &v }

func items(v ...ItemInput) *[]ItemInput { return &v }
