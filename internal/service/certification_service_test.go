package service_test

import (
	"testing"

	"github.com/salesdesk/crm-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificationService_Price(t *testing.T) {
	svc := service.NewCertificationService()

	t.Run("standard invoice", func(t *testing.T) {
		dto, err := svc.Price(100000)
		require.NoError(t, err)

		expected := ((100000 * 1.06 * 0.0018) + 100 + 30) / 0.94
		assert.InDelta(t, expected, dto.CertificationPrice, 0.0001)
		assert.Equal(t, 100000.0, dto.InvoiceValue)
		assert.Equal(t, "SAR", dto.Currency)
	})

	t.Run("zero invoice still carries fixed fees", func(t *testing.T) {
		dto, err := svc.Price(0)
		require.NoError(t, err)
		assert.InDelta(t, 130.0/0.94, dto.CertificationPrice, 0.0001)
	})

	t.Run("negative invoice rejected", func(t *testing.T) {
		_, err := svc.Price(-1)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}
