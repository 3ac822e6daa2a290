package mapper

import (
	"github.com/salesdesk/crm-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ToCustomerSummaryDTO converts a Customer to its list-view projection.
// The counts rely on the collections being preloaded.
func ToCustomerSummaryDTO(customer *domain.Customer) domain.CustomerSummaryDTO {
	return domain.CustomerSummaryDTO{
		ID:           customer.ID,
		Name:         customer.Name,
		Type:         string(customer.Type),
		Status:       string(customer.Status),
		Email:        customer.Email,
		Phone:        customer.Phone,
		City:         customer.City,
		Country:      string(customer.Country),
		LastContact:  customer.LastContact.Format(dateLayout),
		CreatedAt:    customer.CreatedAt.Format(dateLayout),
		ContactCount: len(customer.Contacts),
		OfferCount:   len(customer.Offers),
		OrderCount:   len(customer.Orders),
		TaskCount:    len(customer.Tasks),
	}
}

// ToCustomerPriceDTO resolves the customer name for a price row. A
// dangling reference renders as "Unknown" rather than failing.
func ToCustomerPriceDTO(price *domain.CustomerPrice, names map[string]string) domain.CustomerPriceDTO {
	name, ok := names[price.CustomerID]
	if !ok {
		name = "Unknown"
	}
	return domain.CustomerPriceDTO{
		CustomerID:      price.CustomerID,
		CustomerName:    name,
		Price:           price.Price,
		DiscountedPrice: price.DiscountedPrice,
	}
}

// ToImportResultDTO summarizes a parsed spreadsheet
func ToImportResultDTO(customers, families, products int, errs []string) domain.ImportResultDTO {
	if errs == nil {
		errs = []string{}
	}
	return domain.ImportResultDTO{
		CustomersImported: customers,
		FamiliesImported:  families,
		ProductsImported:  products,
		Errors:            errs,
	}
}
