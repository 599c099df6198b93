package service

import (
	"testing"
	"time"

	"oilbooking/internal/database"
	"oilbooking/internal/model"
	"oilbooking/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixtures holds the repositories the service tests wire together. The hub
// is left nil: Publish is a no-op without one.
type fixtures struct {
	db               *gorm.DB
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	priceRepo        repository.PriceRepository
	counterPartyRepo repository.CounterPartyRepository
	requestRepo      repository.RequestRepository
	orderRepo        repository.OrderRepository
	invoiceRepo      repository.InvoiceRepository
	auditRepo        repository.AuditRepository
}

func setupFixtures(t *testing.T) *fixtures {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return &fixtures{
		db:               db,
		txManager:        repository.NewTransactionManager(db),
		userRepo:         repository.NewUserRepository(db),
		productRepo:      repository.NewProductRepository(db),
		priceRepo:        repository.NewPriceRepository(db),
		counterPartyRepo: repository.NewCounterPartyRepository(db),
		requestRepo:      repository.NewRequestRepository(db),
		orderRepo:        repository.NewOrderRepository(db),
		invoiceRepo:      repository.NewInvoiceRepository(db),
		auditRepo:        repository.NewAuditRepository(db),
	}
}

func (f *fixtures) requestService() RequestService {
	return NewRequestService(f.requestRepo, f.priceRepo, f.auditRepo, f.txManager, nil)
}

func (f *fixtures) orderService() OrderService {
	return NewOrderService(f.orderRepo, f.requestRepo, f.counterPartyRepo, f.auditRepo, f.txManager, nil)
}

func (f *fixtures) invoiceService() InvoiceService {
	return NewInvoiceService(f.invoiceRepo, f.orderRepo, f.auditRepo, f.txManager, nil)
}

func (f *fixtures) seedUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user := &model.User{ID: uuid.New(), Name: name, Email: email, Role: "Trader", IsActive: true}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixtures) seedProduct(t *testing.T, name, uom string) *model.Product {
	t.Helper()
	product := &model.Product{ID: uuid.New(), Name: name, UOM: uom}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *fixtures) seedPrice(t *testing.T, productID uuid.UUID, price string, effectiveFrom time.Time) *model.PriceMaster {
	t.Helper()
	row := &model.PriceMaster{
		ID:            uuid.New(),
		ProductID:     productID,
		Price:         decimal.RequireFromString(price),
		EffectiveFrom: effectiveFrom,
	}
	require.NoError(t, f.db.Create(row).Error)
	return row
}

func (f *fixtures) seedCounterParty(t *testing.T, name string) *model.CounterParty {
	t.Helper()
	cp := &model.CounterParty{ID: uuid.New(), Name: name, ContactInfo: "ops@" + name + ".example"}
	require.NoError(t, f.db.Create(cp).Error)
	return cp
}

func (f *fixtures) seedRequest(t *testing.T, user *model.User, product *model.Product, quantity, price, status string) *model.Request {
	t.Helper()
	request := &model.Request{
		ID:          uuid.New(),
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    decimal.RequireFromString(quantity),
		UOM:         product.UOM,
		Price:       decimal.RequireFromString(price),
		RequestDate: time.Now(),
		Status:      status,
	}
	require.NoError(t, f.db.Create(request).Error)
	return request
}
