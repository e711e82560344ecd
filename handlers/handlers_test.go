package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lewishowell/yacht-provisioning/config"
	"github.com/lewishowell/yacht-provisioning/database"
	"github.com/lewishowell/yacht-provisioning/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDBSeq atomic.Int64

// testEnv is a full router over a fresh in-memory database with one
// authenticated user.
type testEnv struct {
	router *gin.Engine
	api    *API
	db     *gorm.DB
	cfg    *config.Config
	user   *models.User
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:api%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		ClientURL:         "http://localhost:5173",
		ServerURL:         "http://localhost:3001",
		Environment:       "development",
		PurchaseSyncScope: config.SyncScopeAll,
	}

	api := New(db, cfg)
	router := gin.New()
	RegisterRoutes(router, api)

	env := &testEnv{router: router, api: api, db: db, cfg: cfg}
	env.user, env.token = env.newUser(t, "primary")
	return env
}

func (e *testEnv) newUser(t *testing.T, googleID string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		GoogleID: googleID,
		Email:    googleID + "@example.com",
		Name:     "Test User",
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := GenerateToken(user.ID, e.cfg.JWTSecret)
	require.NoError(t, err)
	return user, token
}

// do issues a request as the primary user.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return e.doAs(t, e.token, method, path, body)
}

// doAs issues a request with an explicit bearer token; empty means anonymous.
func (e *testEnv) doAs(t *testing.T, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func parseTestDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func (e *testEnv) createItem(t *testing.T, userID, name string, category models.Category, qty, target float64, unit string) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		UserID:         userID,
		Name:           name,
		Category:       category,
		Quantity:       qty,
		TargetQuantity: target,
		Unit:           unit,
	}
	require.NoError(t, e.db.Create(item).Error)
	return item
}

func (e *testEnv) createList(t *testing.T, userID, name string, items ...models.ProvisioningListItem) *models.ProvisioningList {
	t.Helper()

	list := &models.ProvisioningList{
		UserID: userID,
		Name:   name,
		Status: models.ListStatusDraft,
		Items:  items,
	}
	require.NoError(t, e.db.Create(list).Error)
	return list
}

func (e *testEnv) createMeal(t *testing.T, userID, name string, ingredients ...models.MealIngredient) *models.Meal {
	t.Helper()

	meal := &models.Meal{
		UserID:      userID,
		Name:        name,
		Servings:    2,
		Ingredients: ingredients,
	}
	require.NoError(t, e.db.Create(meal).Error)
	return meal
}
