package query

import (
	"fmt"
	"time"
)

// Filter carries the criteria of an invoice consultation (FiltroConsulta)
type Filter struct {
	// Periodo de imputacion (PeriodoImputacion). Required.
	Period Period `json:"period"`

	// Numero de serie y factura (NumSerieFactura). Optional.
	InvoiceNumber string `json:"invoice_number,omitempty"`

	// NIF de la contraparte (Contraparte/NIF). Optional.
	CounterpartyNIF string `json:"counterparty_nif,omitempty"`

	// Rango de fecha de expedicion (FechaExpedicionFactura/Desde-Hasta).
	// Optional; zero values mean no bound.
	DateFrom time.Time `json:"date_from,omitempty"`
	DateTo   time.Time `json:"date_to,omitempty"`

	// Referencia externa (RefExterna). Optional.
	ExternalReference string `json:"external_reference,omitempty"`

	// Clave de paginacion devuelta por la pagina anterior
	// (ClavePaginacion). Optional.
	PaginationKey string `json:"pagination_key,omitempty"`

	// MostrarNombreRazonEmisor: include issuer names in the response.
	// Slows the query down.
	ShowIssuerName bool `json:"show_issuer_name"`

	// MostrarSistemaInformatico: include computer-system details in the
	// response. Must stay false on recipient queries.
	ShowComputerSystem bool `json:"show_computer_system"`
}

// NewFilter builds a filter for a period with the default response options
func NewFilter(period Period) *Filter {
	return &Filter{Period: period, ShowIssuerName: true}
}

// NextPage returns a copy of the filter continuing at the given
// pagination key
func (f *Filter) NextPage(key string) *Filter {
	next := *f
	next.PaginationKey = key
	return &next
}

// Validate checks the filter values
func (f *Filter) Validate() error {
	if err := f.Period.Validate(); err != nil {
		return err
	}
	if !f.DateFrom.IsZero() && !f.DateTo.IsZero() && f.DateFrom.After(f.DateTo) {
		return fmt.Errorf("date_from cannot be after date_to")
	}
	return nil
}
