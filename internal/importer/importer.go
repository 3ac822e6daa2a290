// Package importer maps a price-list workbook with a fixed cell layout
// onto customer and product-family records. The layout is:
//
//	D2:L2  regular customer names
//	N2:T2  OEM customer names
//	A      product family names (eight fixed row blocks)
//	B      product names
//	C      part numbers
//	D3:T39 pricing matrix
//
// Parsing is a pure transformation of the worksheet; the caller decides
// what to do with the result.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Result is the outcome of parsing one workbook. Errors are advisory:
// whatever was recovered before a failure point is still present.
type Result struct {
	Customers       []domain.Customer
	ProductFamilies []domain.ProductFamily
	Errors          []string
}

// Column positions, 1-based as excelize counts them.
const (
	headerRow = 2

	familyCol  = 1 // A
	productCol = 2 // B
	skuCol     = 3 // C

	regularFirstCol = 4  // D
	regularLastCol  = 12 // L
	oemFirstCol     = 14 // N
	oemLastCol      = 20 // T
)

// familyRange is an inclusive block of sheet rows belonging to one
// product family.
type familyRange struct {
	start int
	end   int
}

// The eight family blocks are a property of the workbook template and do
// not move between files.
var familyRanges = []familyRange{
	{3, 8},
	{9, 18},
	{19, 20},
	{21, 23},
	{24, 26},
	{27, 28},
	{29, 38},
	{39, 39},
}

// Parse reads the first sheet of the workbook and returns the customers
// and product families it describes. now supplies the creation date
// stamped onto imported customers.
func Parse(f *excelize.File, now time.Time) *Result {
	result := &Result{}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "The workbook contains no sheets.")
		return result
	}
	sheet := sheets[0]

	scanFailed := false
	cell := func(col, row int) string {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			scanFailed = true
			return ""
		}
		v, err := f.GetCellValue(sheet, name)
		if err != nil {
			scanFailed = true
			return ""
		}
		return strings.TrimSpace(v)
	}

	// Customer names come from row 2. Empty cells are skipped, not
	// counted as positions: the n-th non-empty name becomes customer-n
	// (or oem-n) and its prices are read from the n-th price column.
	var regularNames, oemNames []string
	for col := regularFirstCol; col <= regularLastCol; col++ {
		if name := cell(col, headerRow); name != "" {
			regularNames = append(regularNames, name)
		}
	}
	for col := oemFirstCol; col <= oemLastCol; col++ {
		if name := cell(col, headerRow); name != "" {
			oemNames = append(oemNames, name)
		}
	}

	for i, name := range regularNames {
		result.Customers = append(result.Customers,
			importedCustomer(fmt.Sprintf("customer-%d", i+1), name, domain.CustomerTypeCustomer, now))
	}
	for i, name := range oemNames {
		result.Customers = append(result.Customers,
			importedCustomer(fmt.Sprintf("oem-%d", i+1), name, domain.CustomerTypeOEM, now))
	}

	for familyIndex, r := range familyRanges {
		familyName := ""
		var products []domain.Product

		for row := r.start; row <= r.end; row++ {
			if v := cell(familyCol, row); v != "" && familyName == "" {
				familyName = v
			}

			productName := cell(productCol, row)
			if productName == "" {
				continue
			}
			sku := cell(skuCol, row)

			var prices []domain.CustomerPrice
			for i := range regularNames {
				if price, ok := parsePrice(cell(regularFirstCol+i, row)); ok {
					prices = append(prices, domain.CustomerPrice{
						CustomerID: fmt.Sprintf("customer-%d", i+1),
						Price:      price,
					})
				}
			}
			for i := range oemNames {
				if price, ok := parsePrice(cell(oemFirstCol+i, row)); ok {
					prices = append(prices, domain.CustomerPrice{
						CustomerID: fmt.Sprintf("oem-%d", i+1),
						Price:      price,
					})
				}
			}

			description := productName
			if sku != "" {
				description = productName + " - " + sku
			}

			products = append(products, domain.Product{
				BaseModel:      domain.BaseModel{ID: fmt.Sprintf("product-%d-%d", familyIndex, row)},
				Name:           productName,
				SKU:            sku,
				Description:    description,
				BasePrice:      maxPrice(prices),
				CustomerPrices: prices,
			})
		}

		// A block contributes a family only when it has both a name and
		// at least one product row.
		if familyName != "" && len(products) > 0 {
			result.ProductFamilies = append(result.ProductFamilies, domain.ProductFamily{
				BaseModel:   domain.BaseModel{ID: fmt.Sprintf("family-%d", familyIndex+1)},
				Name:        familyName,
				Description: "Product family: " + familyName,
				Products:    products,
			})
		}
	}

	if len(result.Customers) == 0 {
		result.Errors = append(result.Errors,
			"No customers found. Please check that customer names are in cells D2:L2 and N2:T2.")
	}
	if len(result.ProductFamilies) == 0 {
		result.Errors = append(result.Errors,
			"No product families found. Please check the spreadsheet structure.")
	}
	if scanFailed {
		result.Errors = append(result.Errors, "Some worksheet cells could not be read; partial data was imported.")
	}

	return result
}

// importedCustomer builds a customer record with defaulted contact and
// address fields.
func importedCustomer(id, name string, typ domain.CustomerType, now time.Time) domain.Customer {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return domain.Customer{
		BaseModel:   domain.BaseModel{ID: id, CreatedAt: day},
		Name:        name,
		Type:        typ,
		Status:      domain.CustomerStatusActive,
		LastContact: day,
	}
}

// parsePrice accepts a cell only when it is present and numeric;
// anything else is silently skipped.
func parsePrice(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// maxPrice returns the highest collected per-customer price, or 0 when
// none were found.
func maxPrice(prices []domain.CustomerPrice) float64 {
	max := 0.0
	for i, p := range prices {
		if i == 0 || p.Price > max {
			max = p.Price
		}
	}
	return max
}
