package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/salesdesk/crm-api/internal/service"
	"github.com/salesdesk/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func workbookBytes(t *testing.T, cells map[string]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for ref, value := range cells {
		require.NoError(t, f.SetCellStr(sheet, ref, value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newImportService(db *gorm.DB) (*service.ImportService, *repository.CustomerRepository, *repository.ProductRepository) {
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	return service.NewImportService(customerRepo, productRepo, zap.NewNop()), customerRepo, productRepo
}

func TestImportService_FullReplace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo, productRepo := newImportService(db)
	ctx := context.Background()

	// Pre-existing data that the import must replace.
	require.NoError(t, customerRepo.Create(ctx, &domain.Customer{
		Name: "Manual Customer",
		Offers: []domain.Offer{
			{Date: time.Now(), FinalUser: "User", ProjectName: "P", Amount: 10},
		},
	}))
	require.NoError(t, productRepo.CreateFamily(ctx, &domain.ProductFamily{Name: "Old Family"}))

	// Data that must survive the import.
	globalTask := &domain.Task{Title: "Global reminder", ExpiryDate: time.Now()}
	require.NoError(t, db.Create(globalTask).Error)
	trip := &domain.BusinessTrip{StartDate: time.Now(), EndDate: time.Now()}
	require.NoError(t, db.Create(trip).Error)

	result, err := svc.Import(ctx, "prices.xlsx", workbookBytes(t, map[string]string{
		"D2": "Acme Corp",
		"N2": "Global OEM",
		"A3": "Valves",
		"B3": "Gate Valve",
		"C3": "GV-100",
		"D3": "150",
		"N3": "120",
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, result.CustomersImported)
	assert.Equal(t, 1, result.FamiliesImported)
	assert.Equal(t, 1, result.ProductsImported)
	assert.Empty(t, result.Errors)

	customers, err := customerRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "customer-1", customers[0].ID)
	assert.Equal(t, "oem-1", customers[1].ID)

	families, err := productRepo.ListFamilies(ctx)
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "Valves", families[0].Name)
	require.Len(t, families[0].Products, 1)
	assert.Len(t, families[0].Products[0].CustomerPrices, 2)

	var tasks []domain.Task
	require.NoError(t, db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Global reminder", tasks[0].Title)

	var trips []domain.BusinessTrip
	require.NoError(t, db.Find(&trips).Error)
	assert.Len(t, trips, 1)
}

func TestImportService_RejectsUnsupportedExtension(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := newImportService(db)

	_, err := svc.Import(context.Background(), "prices.csv", strings.NewReader("a,b"))
	assert.ErrorIs(t, err, service.ErrUnsupportedFile)
}

func TestImportService_CorruptFileReportsErrorWithoutReplacing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo, _ := newImportService(db)
	ctx := context.Background()

	require.NoError(t, customerRepo.Create(ctx, &domain.Customer{Name: "Survivor"}))

	result, err := svc.Import(ctx, "broken.xlsx", strings.NewReader("not a zip archive"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.CustomersImported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to read the file")

	count, err := customerRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestImportService_EmptyWorkbookStillReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo, _ := newImportService(db)
	ctx := context.Background()

	require.NoError(t, customerRepo.Create(ctx, &domain.Customer{Name: "Doomed"}))

	result, err := svc.Import(ctx, "empty.xlsx", workbookBytes(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 0, result.CustomersImported)
	assert.NotEmpty(t, result.Errors)

	count, err := customerRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
