package importer_test

import (
	"testing"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func newWorkbook(t *testing.T, cells map[string]string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for ref, value := range cells {
		require.NoError(t, f.SetCellStr(sheet, ref, value))
	}
	return f
}

func TestParse_CustomersFromHeaderRow(t *testing.T) {
	f := newWorkbook(t, map[string]string{
		"D2": "Acme Corp",
		"E2": "Beta Industries",
		"N2": "Global OEM",
		"A3": "Valves",
		"B3": "Gate Valve",
	})

	result := importer.Parse(f, testNow)

	require.Len(t, result.Customers, 3)

	assert.Equal(t, "customer-1", result.Customers[0].ID)
	assert.Equal(t, "Acme Corp", result.Customers[0].Name)
	assert.Equal(t, domain.CustomerTypeCustomer, result.Customers[0].Type)
	assert.Equal(t, domain.CustomerStatusActive, result.Customers[0].Status)

	assert.Equal(t, "customer-2", result.Customers[1].ID)
	assert.Equal(t, "Beta Industries", result.Customers[1].Name)

	assert.Equal(t, "oem-1", result.Customers[2].ID)
	assert.Equal(t, "Global OEM", result.Customers[2].Name)
	assert.Equal(t, domain.CustomerTypeOEM, result.Customers[2].Type)
}

func TestParse_SparseHeaderSkipsEmptyCellsButKeepsOrder(t *testing.T) {
	// Names in D and F with E blank: the F name becomes customer-2 and
	// its prices are read from the second price column, E.
	f := newWorkbook(t, map[string]string{
		"D2": "First",
		"F2": "Second",
		"A3": "Valves",
		"B3": "Gate Valve",
		"D3": "100",
		"E3": "200",
	})

	result := importer.Parse(f, testNow)

	require.Len(t, result.Customers, 2)
	assert.Equal(t, "customer-1", result.Customers[0].ID)
	assert.Equal(t, "First", result.Customers[0].Name)
	assert.Equal(t, "customer-2", result.Customers[1].ID)
	assert.Equal(t, "Second", result.Customers[1].Name)

	require.Len(t, result.ProductFamilies, 1)
	product := result.ProductFamilies[0].Products[0]
	require.Len(t, product.CustomerPrices, 2)
	assert.Equal(t, "customer-1", product.CustomerPrices[0].CustomerID)
	assert.Equal(t, 100.0, product.CustomerPrices[0].Price)
	assert.Equal(t, "customer-2", product.CustomerPrices[1].CustomerID)
	assert.Equal(t, 200.0, product.CustomerPrices[1].Price)
}

func TestParse_ProductsAndBasePrice(t *testing.T) {
	f := newWorkbook(t, map[string]string{
		"D2": "Acme",
		"E2": "Beta",
		"A3": "Valves",
		"B3": "Gate Valve",
		"C3": "GV-100",
		"D3": "150.5",
		"E3": "210",
		"B4": "Ball Valve",
		"D4": "not a number",
	})

	result := importer.Parse(f, testNow)

	require.Len(t, result.ProductFamilies, 1)
	family := result.ProductFamilies[0]
	assert.Equal(t, "family-1", family.ID)
	assert.Equal(t, "Valves", family.Name)
	require.Len(t, family.Products, 2)

	gate := family.Products[0]
	assert.Equal(t, "product-0-3", gate.ID)
	assert.Equal(t, "Gate Valve", gate.Name)
	assert.Equal(t, "GV-100", gate.SKU)
	assert.Equal(t, "Gate Valve - GV-100", gate.Description)
	assert.Equal(t, 210.0, gate.BasePrice)
	assert.Len(t, gate.CustomerPrices, 2)

	// Non-numeric price cells are skipped; with no prices the base is 0.
	ball := family.Products[1]
	assert.Equal(t, "product-0-4", ball.ID)
	assert.Equal(t, "Ball Valve", ball.Description)
	assert.Equal(t, 0.0, ball.BasePrice)
	assert.Empty(t, ball.CustomerPrices)
}

func TestParse_ZeroPriceIsAccepted(t *testing.T) {
	f := newWorkbook(t, map[string]string{
		"D2": "Acme",
		"A3": "Valves",
		"B3": "Gate Valve",
		"D3": "0",
	})

	result := importer.Parse(f, testNow)

	require.Len(t, result.ProductFamilies, 1)
	product := result.ProductFamilies[0].Products[0]
	require.Len(t, product.CustomerPrices, 1)
	assert.Equal(t, 0.0, product.CustomerPrices[0].Price)
	assert.Equal(t, 0.0, product.BasePrice)
}

func TestParse_FamilyNeedsNameAndProducts(t *testing.T) {
	f := newWorkbook(t, map[string]string{
		"D2": "Acme",
		// Block 3-8: name but no product rows.
		"A3": "Nameless Products Below",
		// Block 9-18: products but no family name.
		"B9": "Orphan Product",
		// Block 19-20: both, so it is kept.
		"A19": "Pumps",
		"B19": "Centrifugal Pump",
	})

	result := importer.Parse(f, testNow)

	require.Len(t, result.ProductFamilies, 1)
	family := result.ProductFamilies[0]
	assert.Equal(t, "family-3", family.ID)
	assert.Equal(t, "Pumps", family.Name)
	require.Len(t, family.Products, 1)
	assert.Equal(t, "product-2-19", family.Products[0].ID)
}

func TestParse_FamilyNameFromFirstNonEmptyRow(t *testing.T) {
	f := newWorkbook(t, map[string]string{
		"D2": "Acme",
		"A5": "Late Name",
		"A6": "Ignored Second Name",
		"B4": "Early Product",
	})

	result := importer.Parse(f, testNow)

	require.Len(t, result.ProductFamilies, 1)
	assert.Equal(t, "Late Name", result.ProductFamilies[0].Name)
}

func TestParse_EmptyWorkbookReportsAdvisoryErrors(t *testing.T) {
	f := excelize.NewFile()

	result := importer.Parse(f, testNow)

	assert.Empty(t, result.Customers)
	assert.Empty(t, result.ProductFamilies)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "No customers found")
	assert.Contains(t, result.Errors[1], "No product families found")
}

func TestParse_CustomerDatesTruncatedToDay(t *testing.T) {
	f := newWorkbook(t, map[string]string{
		"D2": "Acme",
		"A3": "Valves",
		"B3": "Gate Valve",
	})

	result := importer.Parse(f, testNow)

	require.NotEmpty(t, result.Customers)
	day := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, result.Customers[0].CreatedAt)
	assert.Equal(t, day, result.Customers[0].LastContact)
}

func TestParse_IsSameForSameWorkbook(t *testing.T) {
	cells := map[string]string{
		"D2": "Acme",
		"N2": "OEM One",
		"A3": "Valves",
		"B3": "Gate Valve",
		"D3": "100",
	}

	first := importer.Parse(newWorkbook(t, cells), testNow)
	second := importer.Parse(newWorkbook(t, cells), testNow)

	assert.Equal(t, first, second)
}
