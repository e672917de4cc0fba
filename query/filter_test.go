package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodValidate(t *testing.T) {
	assert.NoError(t, NewPeriod(2025, 6).Validate())
	assert.Error(t, NewPeriod(1999, 6).Validate())
	assert.Error(t, NewPeriod(10000, 6).Validate())
	assert.Error(t, NewPeriod(2025, 0).Validate())
	assert.Error(t, NewPeriod(2025, 13).Validate())
}

func TestPeriodFormatting(t *testing.T) {
	p := NewPeriod(2025, 6)
	assert.Equal(t, "2025", p.Ejercicio())
	assert.Equal(t, "06", p.Periodo())

	assert.Equal(t, "12", NewPeriod(2024, 12).Periodo())
}

func TestFilterDefaults(t *testing.T) {
	f := NewFilter(NewPeriod(2025, 6))
	assert.True(t, f.ShowIssuerName)
	assert.False(t, f.ShowComputerSystem)
	assert.NoError(t, f.Validate())
}

func TestFilterDateRange(t *testing.T) {
	f := NewFilter(NewPeriod(2025, 6))
	f.DateFrom = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	f.DateTo = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Error(t, f.Validate())

	f.DateTo = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, f.Validate())
}

func TestFilterNextPage(t *testing.T) {
	f := NewFilter(NewPeriod(2025, 6))
	f.InvoiceNumber = "F-001"

	next := f.NextPage("KEY123")
	assert.Equal(t, "KEY123", next.PaginationKey)
	assert.Equal(t, "F-001", next.InvoiceNumber)
	assert.Empty(t, f.PaginationKey)
}
