package domain

// Request and response shapes for the JSON API. Dates travel as
// "YYYY-MM-DD" strings and are parsed at the service boundary.

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Type         string `json:"type" validate:"omitempty,oneof=Customer OEM Agent"`
	Status       string `json:"status" validate:"omitempty,oneof=Active Prospect"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=50"`
	Street       string `json:"street" validate:"max=200"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"max=100"`
	ZipCode      string `json:"zipCode" validate:"max=20"`
	Country      string `json:"country" validate:"omitempty,oneof=KSA Kuwait UAE Qatar Iraq Egypt"`
	PaymentTerms string `json:"paymentTerms" validate:"max=200"`
}

// UpdateCustomerRequest is the payload for updating a customer
type UpdateCustomerRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Type         string `json:"type" validate:"omitempty,oneof=Customer OEM Agent"`
	Status       string `json:"status" validate:"omitempty,oneof=Active Prospect"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=50"`
	Street       string `json:"street" validate:"max=200"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"max=100"`
	ZipCode      string `json:"zipCode" validate:"max=20"`
	Country      string `json:"country" validate:"omitempty,oneof=KSA Kuwait UAE Qatar Iraq Egypt"`
	PaymentTerms string `json:"paymentTerms" validate:"max=200"`
	LastContact  string `json:"lastContact" validate:"omitempty,datetime=2006-01-02"`
}

// CustomerSummaryDTO is the list-view projection of a customer
type CustomerSummaryDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Country      string `json:"country"`
	LastContact  string `json:"lastContact"`
	CreatedAt    string `json:"createdAt"`
	ContactCount int    `json:"contactCount"`
	OfferCount   int    `json:"offerCount"`
	OrderCount   int    `json:"orderCount"`
	TaskCount    int    `json:"taskCount"`
}

// CreateContactRequest is the payload for adding a contact to a customer
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=50"`
	Role  string `json:"role" validate:"max=100"`
}

// CreateNoteRequest is the payload for adding a note to a customer
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// OfferRequest is the payload for creating or updating an offer
type OfferRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	FinalUser   string  `json:"finalUser" validate:"required,max=200"`
	ProjectName string  `json:"projectName" validate:"required,max=200"`
	OfferName   string  `json:"offerName" validate:"max=200"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	OCName      string  `json:"ocName" validate:"max=200"`
	Paid        bool    `json:"paid"`
}

// OrderRequest is the payload for creating or updating an order
type OrderRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	FinalUser   string  `json:"finalUser" validate:"required,max=200"`
	ProjectName string  `json:"projectName" validate:"required,max=200"`
	OfferName   string  `json:"offerName" validate:"max=200"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	OCName      string  `json:"ocName" validate:"max=200"`
	Paid        bool    `json:"paid"`
}

// TaskRequest is the payload for creating or updating a task, global or
// customer-owned
type TaskRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description"`
	RegistrationDate string `json:"registrationDate" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate       string `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Urgent           bool   `json:"urgent"`
	VeryUrgent       bool   `json:"veryUrgent"`
}

// TripRequest is the payload for creating or updating a business trip
type TripRequest struct {
	StartDate        string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	CustomersVisited []string `json:"customersVisited"`
	CountriesVisited []string `json:"countriesVisited"`
	Details          string            `json:"details"`
	TodoList         []TripTodoRequest `json:"todoList" validate:"dive"`
}

// TripTodoRequest is a single checklist item on a trip
type TripTodoRequest struct {
	Task      string `json:"task" validate:"required"`
	Completed bool   `json:"completed"`
}

// TripFilter narrows the trip list
type TripFilter struct {
	Country    string
	CustomerID string
	DateFrom   string
	DateTo     string
}

// FamilyRequest is the payload for creating or updating a product family
type FamilyRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
}

// ProductRequest is the payload for creating or updating a product
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	SKU         string  `json:"sku" validate:"max=100"`
	Description string  `json:"description" validate:"max=500"`
	BasePrice   float64 `json:"basePrice" validate:"gte=0"`
}

// CustomerPriceRequest upserts a per-customer price on a product
type CustomerPriceRequest struct {
	CustomerID      string   `json:"customerId" validate:"required"`
	Price           float64  `json:"price" validate:"gte=0"`
	DiscountedPrice *float64 `json:"discountedPrice" validate:"omitempty,gte=0"`
}

// CustomerPriceDTO is a price row with the customer name resolved.
// Dangling customer references render as "Unknown".
type CustomerPriceDTO struct {
	CustomerID      string   `json:"customerId"`
	CustomerName    string   `json:"customerName"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
}

// ImportResultDTO summarizes a spreadsheet import
type ImportResultDTO struct {
	CustomersImported int      `json:"customersImported"`
	FamiliesImported  int      `json:"familiesImported"`
	ProductsImported  int      `json:"productsImported"`
	Errors            []string `json:"errors"`
}

// CertificationPriceDTO is the certification-of-origin calculator result
type CertificationPriceDTO struct {
	InvoiceValue       float64 `json:"invoiceValue"`
	CertificationPrice float64 `json:"certificationPrice"`
	Currency           string  `json:"currency"`
}

// PaginatedResponse wraps list endpoints
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
