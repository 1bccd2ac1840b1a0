package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Edmundtutu/foody-sub002/configs"
	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/Edmundtutu/foody-sub002/events"
	"github.com/Edmundtutu/foody-sub002/routes"
	"github.com/Edmundtutu/foody-sub002/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const secret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type api struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine

	owner, customer entity.User
	rest            entity.Restaurant
	rice, soda      entity.Dish
	combo           entity.Combo
	mainsID         uint
}

func newAPI(t *testing.T) *api {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, configs.Migrate(db))
	require.NoError(t, configs.SeedLookups(db))

	a := &api{t: t, db: db}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	a.owner = entity.User{Email: "owner@example.com", Password: string(hash), Role: entity.RoleOwner}
	a.customer = entity.User{Email: "eater@example.com", Password: string(hash), Role: entity.RoleCustomer}
	require.NoError(t, db.Create(&a.owner).Error)
	require.NoError(t, db.Create(&a.customer).Error)

	a.rest = entity.Restaurant{Name: "Rolex Corner", UserID: a.owner.ID}
	require.NoError(t, db.Create(&a.rest).Error)
	a.rice = entity.Dish{RestaurantID: a.rest.ID, Name: "Rice", Price: 8000, Available: true,
		Options: []entity.DishOption{{Name: "Extra Sauce", ExtraCost: 1000}}}
	a.soda = entity.Dish{RestaurantID: a.rest.ID, Name: "Soda", Price: 2000, Available: true}
	require.NoError(t, db.Create(&a.rice).Error)
	require.NoError(t, db.Create(&a.soda).Error)

	cfg := &configs.Config{JWTSecret: secret, JWTTTL: time.Hour, CalculateRatePerSec: 1000, CalculateBurst: 1000, DeliveryFee: 1500}
	a.router = gin.New()
	routes.RegisterRoutes(a.router, db, cfg, events.NopPublisher{})

	// FIXED 20000 with one required group
	var created struct {
		Data entity.Combo `json:"data"`
	}
	w := a.do(http.MethodPost, "/partner/restaurant/combos", a.token(a.owner), map[string]any{
		"restaurant_id": a.rest.ID,
		"name":          "Lunch",
		"pricing_mode":  "FIXED",
		"base_price":    20000,
		"groups": []map[string]any{{
			"name": "Mains", "allowed_min": 1, "allowed_max": 1,
			"items": []map[string]any{{"dish_id": a.rice.ID}},
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	a.combo = created.Data
	require.Len(t, a.combo.Groups, 1)
	a.mainsID = a.combo.Groups[0].ID
	return a
}

func (a *api) token(u entity.User) string {
	tok, err := utils.GenerateToken(u.ID, u.Role, secret, time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) selection(optionIDs ...uint) map[string]any {
	if optionIDs == nil {
		optionIDs = []uint{}
	}
	return map[string]any{"groups": []map[string]any{{
		"group_id": a.mainsID,
		"selected": []map[string]any{{"dish_id": a.rice.ID, "option_ids": optionIDs}},
	}}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCalculate(t *testing.T) {
	a := newAPI(t)
	path := fmt.Sprintf("/combos/%d/calculate", a.combo.ID)

	w := a.do(http.MethodPost, path, "", a.selection(a.rice.Options[0].ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(21000), data["total"])
	assert.Equal(t, "FIXED", data["pricing_mode"])
	breakdown := data["breakdown"].(map[string]any)
	assert.Equal(t, float64(20000), breakdown["combo_base"])
	assert.Equal(t, float64(1000), breakdown["options_surcharges"])

	var count int64
	require.NoError(t, a.db.Model(&entity.ComboSelection{}).Count(&count).Error)
	assert.Zero(t, count, "calculate never persists")
}

func TestCalculateValidationErrors(t *testing.T) {
	a := newAPI(t)
	path := fmt.Sprintf("/combos/%d/calculate", a.combo.ID)

	w := a.do(http.MethodPost, path, "", map[string]any{"groups": []map[string]any{{
		"group_id": a.mainsID,
		"selected": []map[string]any{{"dish_id": a.soda.ID}},
	}}})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, false, body["ok"])
	errs := body["errors"].(map[string]any)
	assert.Equal(t, []any{fmt.Sprintf("Dish %d is not offered in group 'Mains'.", a.soda.ID)}, errs["groups"])
}

func TestCalculateUnknownCombo(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/combos/999/calculate", "", a.selection())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, "/combos/abc/calculate", "", a.selection())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSelectionRequiresLogin(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, fmt.Sprintf("/combos/%d/selections", a.combo.ID), "", a.selection())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSelectionThenOrder(t *testing.T) {
	a := newAPI(t)
	tok := a.token(a.customer)

	w := a.do(http.MethodPost, fmt.Sprintf("/combos/%d/selections", a.combo.ID), tok, a.selection())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data entity.ComboSelection `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	sel := created.Data
	assert.Equal(t, int64(20000), sel.TotalPrice)
	require.Len(t, sel.Items, 1)
	assert.Equal(t, "Mains", sel.Items[0].Options.GroupName)

	w = a.do(http.MethodGet, fmt.Sprintf("/combo-selections/%d", sel.ID), tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, fmt.Sprintf("/combo-selections/%d", sel.ID), a.token(a.owner), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/orders", tok, map[string]any{
		"restaurant_id": a.rest.ID,
		"items": []map[string]any{
			{"combo_selection_id": sel.ID, "qty": 1},
			{"dish_id": a.soda.ID, "qty": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode(t, w)["data"].(map[string]any)["order"].(map[string]any)
	assert.Equal(t, float64(24000), order["subtotal"])
	assert.Equal(t, float64(25500), order["total"])

	w = a.do(http.MethodPost, "/orders", tok, map[string]any{
		"restaurant_id": a.rest.ID,
		"items":         []map[string]any{{"dish_id": a.soda.ID, "combo_selection_id": sel.ID, "qty": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestStructureEndpoint(t *testing.T) {
	a := newAPI(t)
	path := fmt.Sprintf("/partner/restaurant/combos/%d/structure", a.combo.ID)
	payload := map[string]any{"groups": []map[string]any{
		{"id": a.mainsID, "name": "Mains", "allowed_min": 1, "allowed_max": 1},
		{"name": "Drinks", "allowed_min": 0, "allowed_max": 1, "items": []map[string]any{{"dish_id": a.soda.ID}}},
	}}

	w := a.do(http.MethodPut, path, a.token(a.customer), payload)
	assert.Equal(t, http.StatusForbidden, w.Code, "customers are stopped by role")

	stranger := entity.User{Email: "other@example.com", Role: entity.RoleOwner}
	require.NoError(t, a.db.Create(&stranger).Error)
	w = a.do(http.MethodPut, path, a.token(stranger), payload)
	assert.Equal(t, http.StatusForbidden, w.Code, "owners only manage their own restaurant")

	w = a.do(http.MethodPut, path, a.token(a.owner), payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Data entity.Combo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data.Groups, 2)
	assert.Equal(t, a.mainsID, out.Data.Groups[0].ID)
	assert.Len(t, out.Data.Groups[0].Items, 1)
	assert.Equal(t, "Drinks", out.Data.Groups[1].Name)

	w = a.do(http.MethodPut, path, a.token(a.owner), map[string]any{"groups": []map[string]any{
		{"name": "Broken", "allowed_min": 2, "allowed_max": 1},
	}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "groups.0.allowed_max")
}

func TestCreateComboRejectsUnknownPricingMode(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/partner/restaurant/combos", a.token(a.owner), map[string]any{
		"restaurant_id": a.rest.ID, "name": "Bad", "pricing_mode": "BUNDLE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicComboReads(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, fmt.Sprintf("/restaurants/%d/combos", a.rest.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].(map[string]any)["items"].([]any)
	assert.Len(t, list, 1)

	w = a.do(http.MethodGet, fmt.Sprintf("/combos/%d", a.combo.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/partner/restaurant/combos/%d", a.combo.ID), a.token(a.owner), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, fmt.Sprintf("/combos/%d", a.combo.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "Eater@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok := decode(t, w)["data"].(map[string]any)["token"].(string)
	claims, err := utils.ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, a.customer.ID, claims.UserID)

	w = a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "eater@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
