package service

import (
	"github.com/salesdesk/crm-api/internal/domain"
)

// CertificationService prices a certificate of origin for an invoice.
// The formula grosses the invoice value up by 6%, applies the chamber of
// commerce rate of 0.18%, adds the fixed issuance and handling fees and
// divides by 0.94 to cover the agency margin.
type CertificationService struct{}

func NewCertificationService() *CertificationService {
	return &CertificationService{}
}

const (
	invoiceUplift      = 1.06
	chamberRate        = 0.0018
	issuanceFee        = 100.0
	handlingFee        = 30.0
	agencyMarginFactor = 0.94
)

func (s *CertificationService) Price(invoiceValue float64) (*domain.CertificationPriceDTO, error) {
	if invoiceValue < 0 {
		return nil, ErrInvalidInput
	}

	price := ((invoiceValue * invoiceUplift * chamberRate) + issuanceFee + handlingFee) / agencyMarginFactor

	return &domain.CertificationPriceDTO{
		InvoiceValue:       invoiceValue,
		CertificationPrice: price,
		Currency:           "SAR",
	}, nil
}
