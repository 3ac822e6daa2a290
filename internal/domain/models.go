package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the common identity and bookkeeping columns.
// IDs are strings rather than native UUIDs because spreadsheet imports
// assign synthetic ids like "customer-1" and "product-0-3"; manually
// created records get a generated UUID in BeforeCreate.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// CustomerType classifies the commercial relationship
type CustomerType string

const (
	CustomerTypeCustomer    CustomerType = "Customer"
	CustomerTypeOEM         CustomerType = "OEM"
	CustomerTypeAgent       CustomerType = "Agent"
	CustomerTypeUnspecified CustomerType = ""
)

// Valid reports whether the type is one of the known values
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerTypeCustomer, CustomerTypeOEM, CustomerTypeAgent, CustomerTypeUnspecified:
		return true
	}
	return false
}

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive      CustomerStatus = "Active"
	CustomerStatusProspect    CustomerStatus = "Prospect"
	CustomerStatusUnspecified CustomerStatus = ""
)

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusProspect, CustomerStatusUnspecified:
		return true
	}
	return false
}

// Country enumerates the markets the sales organization operates in.
// The empty value means the address has no country set yet.
type Country string

const (
	CountryKSA         Country = "KSA"
	CountryKuwait      Country = "Kuwait"
	CountryUAE         Country = "UAE"
	CountryQatar       Country = "Qatar"
	CountryIraq        Country = "Iraq"
	CountryEgypt       Country = "Egypt"
	CountryUnspecified Country = ""
)

func (c Country) Valid() bool {
	switch c {
	case CountryKSA, CountryKuwait, CountryUAE, CountryQatar, CountryIraq, CountryEgypt, CountryUnspecified:
		return true
	}
	return false
}

// Customer represents an account in the CRM. A customer exclusively owns
// its nested collections; nothing is shared between customers.
type Customer struct {
	BaseModel
	Name         string         `gorm:"type:varchar(200);not null;index" json:"name"`
	Type         CustomerType   `gorm:"type:varchar(20);not null;default:'Customer';index" json:"type"`
	Status       CustomerStatus `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	Email        string         `gorm:"type:varchar(255)" json:"email"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	Street       string         `gorm:"type:varchar(200)" json:"street"`
	City         string         `gorm:"type:varchar(100)" json:"city"`
	State        string         `gorm:"type:varchar(100)" json:"state"`
	ZipCode      string         `gorm:"type:varchar(20)" json:"zipCode"`
	Country      Country        `gorm:"type:varchar(50)" json:"country"`
	PaymentTerms string         `gorm:"type:varchar(200)" json:"paymentTerms"`
	LastContact  time.Time      `json:"lastContact"`
	Contacts     []Contact      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"contacts"`
	Notes        []Note         `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"notes"`
	Offers       []Offer        `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"offers"`
	Orders       []Order        `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"orders"`
	Documents    []Document     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"documents"`
	Tasks        []Task         `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"tasks"`
}

// Contact is a person working for a customer
type Contact struct {
	BaseModel
	CustomerID string `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Email      string `gorm:"type:varchar(255)" json:"email"`
	Phone      string `gorm:"type:varchar(50)" json:"phone"`
	Role       string `gorm:"type:varchar(100)" json:"role"`
}

// Note is a free-text note attached to a customer
type Note struct {
	BaseModel
	CustomerID string    `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	Date       time.Time `json:"date"`
}

// Offer is a pre-sale quotation. Flipping MarkedAsOrdered promotes it into
// the orders view without moving or copying the record.
type Offer struct {
	BaseModel
	CustomerID      string       `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Date            time.Time    `gorm:"index" json:"date"`
	FinalUser       string       `gorm:"type:varchar(200)" json:"finalUser"`
	ProjectName     string       `gorm:"type:varchar(200)" json:"projectName"`
	OfferName       string       `gorm:"type:varchar(200)" json:"offerName"`
	Amount          float64      `json:"amount"`
	OCName          string       `gorm:"type:varchar(200);column:oc_name" json:"ocName"`
	Paid            bool         `gorm:"not null;default:false" json:"paid"`
	MarkedAsOrdered bool         `gorm:"not null;default:false;index" json:"markedAsOrdered"`
	Documents       []Attachment `gorm:"foreignKey:OwnerID" json:"documents"`
}

// Order is a confirmed sale, either entered directly or derived from a
// flagged offer (OriginalOfferID set in that case).
type Order struct {
	BaseModel
	CustomerID      string       `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Date            time.Time    `gorm:"index" json:"date"`
	FinalUser       string       `gorm:"type:varchar(200)" json:"finalUser"`
	ProjectName     string       `gorm:"type:varchar(200)" json:"projectName"`
	OfferName       string       `gorm:"type:varchar(200)" json:"offerName"`
	Amount          float64      `json:"amount"`
	OCName          string       `gorm:"type:varchar(200);column:oc_name" json:"ocName"`
	Paid            bool         `gorm:"not null;default:false" json:"paid"`
	OriginalOfferID string       `gorm:"type:varchar(64)" json:"originalOfferId,omitempty"`
	Documents       []Attachment `gorm:"foreignKey:OwnerID" json:"documents"`
}

// Attachment is a file reference hanging off an offer or order
type Attachment struct {
	BaseModel
	OwnerID     string `gorm:"type:varchar(64);not null;index" json:"-"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	ContentType string `gorm:"type:varchar(100)" json:"type"`
	Size        int64  `json:"size"`
	URL         string `gorm:"type:varchar(500)" json:"url"`
}

// Document is a file stored against a customer
type Document struct {
	BaseModel
	CustomerID  string    `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	ContentType string    `gorm:"type:varchar(100)" json:"type"`
	Size        int64     `json:"size"`
	URL         string    `gorm:"type:varchar(500)" json:"url"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Task is a dated to-do. CustomerID is nil for global tasks owned by the
// application rather than a customer.
type Task struct {
	BaseModel
	CustomerID       *string   `gorm:"type:varchar(64);index" json:"customerId,omitempty"`
	Title            string    `gorm:"type:varchar(200);not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	RegistrationDate time.Time `json:"registrationDate"`
	ExpiryDate       time.Time `gorm:"index" json:"expiryDate"`
	Completed        bool      `gorm:"not null;default:false" json:"completed"`
	Urgent           bool      `gorm:"not null;default:false" json:"urgent"`
	VeryUrgent       bool      `gorm:"not null;default:false" json:"veryUrgent"`
}

// BusinessTrip records a sales trip. Customer ids are weak references and
// countries are free text, deliberately not validated against Country.
type BusinessTrip struct {
	BaseModel
	StartDate        time.Time  `gorm:"index" json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	CustomersVisited []string   `gorm:"serializer:json" json:"customersVisited"`
	CountriesVisited []string   `gorm:"serializer:json" json:"countriesVisited"`
	Details          string     `gorm:"type:text" json:"details"`
	TodoList         []TripTodo `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"todoList"`
}

// TripTodo is a checklist entry owned by a business trip
type TripTodo struct {
	BaseModel
	TripID    string `gorm:"type:varchar(64);not null;index" json:"-"`
	Task      string `gorm:"type:varchar(500);not null" json:"task"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
}

// ProductFamily is a named grouping of related products sharing a pricing
// block in the source spreadsheet
type ProductFamily struct {
	BaseModel
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	Products    []Product `gorm:"foreignKey:FamilyID;constraint:OnDelete:CASCADE" json:"products"`
}

// Product belongs to a family and carries a base price plus per-customer
// overrides
type Product struct {
	BaseModel
	FamilyID       string          `gorm:"type:varchar(64);not null;index" json:"familyId"`
	Name           string          `gorm:"type:varchar(200);not null" json:"name"`
	SKU            string          `gorm:"type:varchar(100)" json:"sku"`
	Description    string          `gorm:"type:varchar(500)" json:"description"`
	BasePrice      float64         `json:"basePrice"`
	CustomerPrices []CustomerPrice `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"customerPrices"`
}

// CustomerPrice is a per-customer price override. CustomerID is a weak
// reference: it may point at a customer that no longer exists, in which
// case views fall back to the "Unknown" label.
type CustomerPrice struct {
	BaseModel
	ProductID       string   `gorm:"type:varchar(64);not null;index" json:"-"`
	CustomerID      string   `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
}
