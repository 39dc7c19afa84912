package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/domain/entity"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/sangkips/cueclub-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/cueclub-api/internal/infrastructure/repository"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixture wires every service on one in-memory database.
type fixture struct {
	db          *gorm.DB
	tx          domainRepo.Transactor
	sessionRepo domainRepo.SessionRepository
	tableRepo   domainRepo.TableRepository
	productRepo domainRepo.ProductRepository
	promoRepo   domainRepo.PromotionRepository
	billRepo    domainRepo.BillRepository

	settings   *service.SettingsService
	catalog    *service.CatalogService
	promotions *service.PromotionService
	sessions   *service.SessionService
	bills      *service.BillService
}

func testSettings() *entity.VenueSettings {
	return &entity.VenueSettings{
		Name:         "Test Club",
		Currency:     "VND",
		Timezone:     "UTC",
		RoundingStep: 15,
		RoundingMode: enum.RoundingModeCeil,
		GraceMinutes: 5,
		PaperSize:    entity.Paper80mm,
		PrintCopies:  1,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	f := &fixture{
		db:          db,
		tx:          repository.NewTransactor(db),
		sessionRepo: repository.NewSessionRepository(db),
		tableRepo:   repository.NewTableRepository(db),
		productRepo: repository.NewProductRepository(db),
		promoRepo:   repository.NewPromotionRepository(db),
		billRepo:    repository.NewBillRepository(db),
	}
	f.settings = service.NewSettingsService(repository.NewSettingsRepository(db), testSettings())
	f.catalog = service.NewCatalogService(repository.NewTableTypeRepository(db), f.tableRepo, repository.NewCategoryRepository(db), f.productRepo)
	f.promotions = service.NewPromotionService(f.promoRepo)
	f.sessions = f.sessionService(f.sessionRepo)
	f.bills = service.NewBillService(f.billRepo)

	_, err := f.settings.GetSettings(context.Background())
	require.NoError(t, err)
	return f
}

// sessionService builds a session service around the given session repository.
func (f *fixture) sessionService(sessions domainRepo.SessionRepository) *service.SessionService {
	return service.NewSessionService(f.tx, sessions, f.tableRepo, f.productRepo, f.promoRepo, f.billRepo, f.settings, zap.NewNop())
}

func (f *fixture) tableType(t *testing.T, name string, rate int64) *entity.TableType {
	t.Helper()
	tt, err := f.catalog.CreateTableType(context.Background(), &service.TableTypeInput{Name: name, BaseRate: rate})
	require.NoError(t, err)
	return tt
}

func (f *fixture) table(t *testing.T, typeID uuid.UUID, name string) *entity.Table {
	t.Helper()
	table, err := f.catalog.CreateTable(context.Background(), &service.TableInput{TableTypeID: typeID, Name: name})
	require.NoError(t, err)
	return table
}

func (f *fixture) product(t *testing.T, name string, price int64) *entity.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), &service.ProductInput{Name: name, Price: price})
	require.NoError(t, err)
	return p
}

func (f *fixture) tableStatus(t *testing.T, id uuid.UUID) enum.TableStatus {
	t.Helper()
	table, err := f.tableRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, table)
	return table.Status
}

func (f *fixture) open(t *testing.T, tableID uuid.UUID, start time.Time) *entity.Session {
	t.Helper()
	session, err := f.sessions.OpenSession(context.Background(), &service.OpenSessionInput{TableID: tableID, StartAt: &start})
	require.NoError(t, err)
	return session
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), "unexpected error: %v", err)
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 6, hour, minute, 0, 0, time.UTC)
}
