package records

import (
	"regexp"
	"strings"
	"time"
)

// dateLayout is the AEAT invoice date format (FechaExpedicionFactura)
const dateLayout = "02-01-2006"

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// InvoiceIdentifier identifies a single invoice (IDFactura)
type InvoiceIdentifier struct {
	// NIF del obligado a expedir la factura (IDEmisorFactura)
	IssuerID string `json:"issuer_id"`

	// Numero de serie + numero de factura (NumSerieFactura)
	InvoiceNumber string `json:"invoice_number"`

	// Fecha de expedicion de la factura (FechaExpedicionFactura).
	// The time of day is ignored.
	IssueDate time.Time `json:"issue_date"`
}

// NewInvoiceIdentifier builds an invoice identifier
func NewInvoiceIdentifier(issuerID, invoiceNumber string, issueDate time.Time) InvoiceIdentifier {
	return InvoiceIdentifier{
		IssuerID:      issuerID,
		InvoiceNumber: invoiceNumber,
		IssueDate:     issueDate,
	}
}

// Validate checks the identifier fields
func (id InvoiceIdentifier) Validate() error {
	errs := &InvalidRecordError{}
	if strings.TrimSpace(id.IssuerID) == "" {
		errs.add("issuer_id", "blank", "issuer_id cannot be blank")
	} else if len(id.IssuerID) != 9 {
		errs.add("issuer_id", "length", "issuer_id must be exactly 9 characters")
	}
	if strings.TrimSpace(id.InvoiceNumber) == "" {
		errs.add("invoice_number", "blank", "invoice_number cannot be blank")
	} else if len(id.InvoiceNumber) > 60 {
		errs.add("invoice_number", "length", "invoice_number cannot exceed 60 characters")
	}
	if id.IssueDate.IsZero() {
		errs.add("issue_date", "blank", "issue_date is required")
	}
	return errs.orNil()
}

// Equals compares two identifiers; issue dates match at day granularity
func (id InvoiceIdentifier) Equals(other InvoiceIdentifier) bool {
	y1, m1, d1 := id.IssueDate.Date()
	y2, m2, d2 := other.IssueDate.Date()
	return id.IssuerID == other.IssuerID &&
		id.InvoiceNumber == other.InvoiceNumber &&
		y1 == y2 && m1 == m2 && d1 == d2
}

// IssueDateString formats the issue date as DD-MM-YYYY
func (id InvoiceIdentifier) IssueDateString() string {
	return id.IssueDate.Format(dateLayout)
}

// Recipient is either a FiscalIdentifier (Spanish NIF) or a
// ForeignFiscalIdentifier
type Recipient interface {
	Validate() error
	RecipientName() string
}

// FiscalIdentifier identifies a party by Spanish NIF (ObligadoEmision,
// Representante, IDDestinatario)
type FiscalIdentifier struct {
	// Nombre-razon social (NombreRazon)
	Name string `json:"name"`

	// Numero de identificacion fiscal (NIF)
	NIF string `json:"nif"`
}

// NewFiscalIdentifier builds a fiscal identifier
func NewFiscalIdentifier(name, nif string) FiscalIdentifier {
	return FiscalIdentifier{Name: name, NIF: nif}
}

// Validate checks the identifier fields
func (f FiscalIdentifier) Validate() error {
	errs := &InvalidRecordError{}
	if strings.TrimSpace(f.Name) == "" {
		errs.add("name", "blank", "name cannot be blank")
	} else if len(f.Name) > 120 {
		errs.add("name", "length", "name cannot exceed 120 characters")
	}
	if strings.TrimSpace(f.NIF) == "" {
		errs.add("nif", "blank", "nif cannot be blank")
	} else if len(f.NIF) != 9 {
		errs.add("nif", "length", "nif must be exactly 9 characters")
	}
	return errs.orNil()
}

// RecipientName implements Recipient
func (f FiscalIdentifier) RecipientName() string { return f.Name }

// ForeignFiscalIdentifier identifies a party established outside Spain
// (IDOtro)
type ForeignFiscalIdentifier struct {
	// Nombre-razon social (NombreRazon)
	Name string `json:"name"`

	// Codigo del pais, ISO 3166-1 alpha-2 (CodigoPais)
	Country string `json:"country"`

	// Clave del tipo de identificacion en el pais de residencia (IDType)
	Type ForeignIDType `json:"type"`

	// Numero de identificacion en el pais de residencia (ID)
	Value string `json:"value"`
}

// Validate checks the identifier fields
func (f ForeignFiscalIdentifier) Validate() error {
	errs := &InvalidRecordError{}
	if strings.TrimSpace(f.Name) == "" {
		errs.add("name", "blank", "name cannot be blank")
	} else if len(f.Name) > 120 {
		errs.add("name", "length", "name cannot exceed 120 characters")
	}
	switch {
	case strings.TrimSpace(f.Country) == "":
		errs.add("country", "blank", "country cannot be blank")
	case !countryCodePattern.MatchString(f.Country):
		errs.add("country", "format", "country must be a 2-letter uppercase code (ISO 3166-1 alpha-2)")
	case f.Country == "ES":
		errs.add("country", "domestic", `country code cannot be "ES", use FiscalIdentifier instead`)
	}
	if !f.Type.IsValid() {
		errs.addf("type", "invalid", "unknown foreign ID type %q", string(f.Type))
	}
	if strings.TrimSpace(f.Value) == "" {
		errs.add("value", "blank", "value cannot be blank")
	} else if len(f.Value) > 20 {
		errs.add("value", "length", "value cannot exceed 20 characters")
	}
	return errs.orNil()
}

// RecipientName implements Recipient
func (f ForeignFiscalIdentifier) RecipientName() string { return f.Name }
