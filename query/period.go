// Package query holds the filter model for AEAT invoice consultations.
package query

import "fmt"

// Period is the tax period a query is scoped to (PeriodoImputacion)
type Period struct {
	// Ejercicio: 4-digit tax year
	Year int `json:"year"`

	// Periodo: tax month, 1-12
	Month int `json:"month"`
}

// NewPeriod builds a query period
func NewPeriod(year, month int) Period {
	return Period{Year: year, Month: month}
}

// Validate checks the period bounds
func (p Period) Validate() error {
	if p.Year < 2000 || p.Year > 9999 {
		return fmt.Errorf("invalid year: %d, must be between 2000 and 9999", p.Year)
	}
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("invalid month: %d, must be between 1 and 12", p.Month)
	}
	return nil
}

// Ejercicio formats the year as the 4-digit XML value
func (p Period) Ejercicio() string {
	return fmt.Sprintf("%04d", p.Year)
}

// Periodo formats the month as the 2-digit XML value
func (p Period) Periodo() string {
	return fmt.Sprintf("%02d", p.Month)
}
