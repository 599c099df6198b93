package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oilbooking/internal/database"
	"oilbooking/internal/model"
	"oilbooking/internal/repository"
	"oilbooking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	txManager := repository.NewTransactionManager(db)
	requestRepo := repository.NewRequestRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	svc := service.NewRequestService(requestRepo, priceRepo, auditRepo, txManager, nil)

	router := gin.New()
	NewRequestHandler(svc).RegisterRoutes(router.Group(""))
	return router, db
}

func seedRequestFixtures(t *testing.T, db *gorm.DB) (*model.User, *model.Product) {
	t.Helper()
	user := &model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Role: "Trader", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	product := &model.Product{ID: uuid.New(), Name: "Brent Crude", UOM: "Barrel"}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(&model.PriceMaster{
		ID:            uuid.New(),
		ProductID:     product.ID,
		Price:         decimal.RequireFromString("75.50"),
		EffectiveFrom: time.Now().Add(-time.Hour),
	}).Error)
	return user, product
}

func TestCreateRequestEndpointReturns201WithLocation(t *testing.T) {
	router, db := setupRouter(t)
	user, product := seedRequestFixtures(t, db)

	body := `{"user_id":"` + user.ID.String() + `","product_id":"` + product.ID.String() + `","quantity":"100","uom":"Barrel"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/api/requests/"))

	var payload struct {
		Status string                  `json:"status"`
		Data   service.RequestResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "success", payload.Status)
	require.Equal(t, "75.50", payload.Data.Price)
}

func TestCreateRequestEndpointRejectsMissingFields(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(`{"quantity":"100"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRequestEndpointUnknownIDReturns404(t *testing.T) {
	router, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/requests/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRequestStatusEndpointReturns204(t *testing.T) {
	router, db := setupRouter(t)
	user, product := seedRequestFixtures(t, db)

	request := &model.Request{
		ID:          uuid.New(),
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    decimal.RequireFromString("100"),
		UOM:         "Barrel",
		Price:       decimal.RequireFromString("75.50"),
		RequestDate: time.Now(),
		Status:      model.RequestStatusPending,
	}
	require.NoError(t, db.Create(request).Error)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/requests/"+request.ID.String()+"/status", strings.NewReader(`{"status":"Approved"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	var stored model.Request
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	require.Equal(t, model.RequestStatusApproved, stored.Status)
}
