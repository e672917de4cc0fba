package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RegistrationRecord is a registration record (RegistroAlta): the
// submission of a newly issued invoice
type RegistrationRecord struct {
	RecordFields

	// Nombre-razon social del obligado a expedir la factura
	// (NombreRazonEmisor)
	IssuerName string `json:"issuer_name"`

	// Tipo de factura (TipoFactura)
	InvoiceType InvoiceType `json:"invoice_type"`

	// Descripcion del objeto de la factura (DescripcionOperacion)
	Description string `json:"description"`

	// Destinatarios de la factura (Destinatarios)
	Recipients []Recipient `json:"recipients,omitempty"`

	// Tipo de factura rectificativa (TipoRectificativa)
	CorrectiveType CorrectiveType `json:"corrective_type,omitempty"`

	// Facturas rectificadas (FacturasRectificadas)
	CorrectedInvoices []InvoiceIdentifier `json:"corrected_invoices,omitempty"`

	// Base imponible rectificada, para rectificativas por sustitucion
	// (ImporteRectificacion/BaseRectificada). Empty means absent.
	CorrectedBaseAmount string `json:"corrected_base_amount,omitempty"`

	// Cuota rectificada, para rectificativas por sustitucion
	// (ImporteRectificacion/CuotaRectificada). Empty means absent.
	CorrectedTaxAmount string `json:"corrected_tax_amount,omitempty"`

	// Facturas sustituidas (FacturasSustituidas)
	ReplacedInvoices []InvoiceIdentifier `json:"replaced_invoices,omitempty"`

	// Desglose de la factura, 1-12 lineas (Desglose)
	Breakdown []BreakdownLine `json:"breakdown"`

	// Importe total de la cuota (CuotaTotal)
	TotalTaxAmount string `json:"total_tax_amount"`

	// Importe total de la factura (ImporteTotal)
	TotalAmount string `json:"total_amount"`
}

func (r *RegistrationRecord) sealed() {}

// Validate checks every registration invariant, accumulating all
// violations found
func (r *RegistrationRecord) Validate() error {
	errs := &InvalidRecordError{}

	// Field well-formedness
	if strings.TrimSpace(r.IssuerName) == "" {
		errs.add("issuer_name", "blank", "issuer_name cannot be blank")
	} else if len(r.IssuerName) > 120 {
		errs.add("issuer_name", "length", "issuer_name cannot exceed 120 characters")
	}
	if !r.InvoiceType.IsValid() {
		errs.addf("invoice_type", "invalid", "unknown invoice type %q", string(r.InvoiceType))
	}
	if strings.TrimSpace(r.Description) == "" {
		errs.add("description", "blank", "description cannot be blank")
	} else if len(r.Description) > 500 {
		errs.add("description", "length", "description cannot exceed 500 characters")
	}
	if len(r.Recipients) > 1000 {
		errs.add("recipients", "length", "recipients cannot exceed 1000 entries")
	}
	for i, recipient := range r.Recipients {
		errs.merge(indexedField("recipients", i), recipient.Validate())
	}
	for i, corrected := range r.CorrectedInvoices {
		errs.merge(indexedField("corrected_invoices", i), corrected.Validate())
	}
	for i, replaced := range r.ReplacedInvoices {
		errs.merge(indexedField("replaced_invoices", i), replaced.Validate())
	}

	// Amount formats and per-line arithmetic
	if !isValidAmount(r.TotalTaxAmount) {
		errs.add("total_tax_amount", "format", `total_tax_amount must match -?\d{1,12}.\d{2} (e.g. "100.00")`)
	}
	if !isValidAmount(r.TotalAmount) {
		errs.add("total_amount", "format", `total_amount must match -?\d{1,12}.\d{2} (e.g. "100.00")`)
	}
	if r.CorrectedBaseAmount != "" && !isValidAmount(r.CorrectedBaseAmount) {
		errs.add("corrected_base_amount", "format", `corrected_base_amount must match -?\d{1,12}.\d{2}`)
	}
	if r.CorrectedTaxAmount != "" && !isValidAmount(r.CorrectedTaxAmount) {
		errs.add("corrected_tax_amount", "format", `corrected_tax_amount must match -?\d{1,12}.\d{2}`)
	}
	if len(r.Breakdown) < 1 {
		errs.add("breakdown", "length", "breakdown requires at least 1 line")
	} else if len(r.Breakdown) > 12 {
		errs.add("breakdown", "length", "breakdown cannot exceed 12 lines")
	}
	for i, line := range r.Breakdown {
		errs.merge(indexedField("breakdown", i), line.Validate())
	}

	// Structural rules per invoice type
	r.validateRecipients(errs)
	r.validateCorrectiveDetails(errs)
	if r.InvoiceType != InvoiceTypeSubstitutive && len(r.ReplacedInvoices) > 0 {
		errs.add("replaced_invoices", "forbidden", "this type of invoice cannot have replaced invoices")
	}

	// Cross-field markers and chain pair
	r.validateCommon(errs)

	// Totals against the breakdown
	r.validateTotals(errs)

	validateHashMatches(r, errs)

	return errs.orNil()
}

// validateRecipients enforces the recipient rules per invoice type:
// simplified invoices carry none, every other type at least one
func (r *RegistrationRecord) validateRecipients(errs *InvalidRecordError) {
	if !r.InvoiceType.IsValid() {
		return
	}
	hasRecipients := len(r.Recipients) > 0
	if r.InvoiceType == InvoiceTypeSimplified || r.InvoiceType == InvoiceTypeR5 {
		if hasRecipients {
			errs.add("recipients", "forbidden", "this type of invoice cannot have recipients")
		}
	} else if !hasRecipients {
		errs.add("recipients", "required", "this type of invoice requires at least one recipient")
	}
}

// validateCorrectiveDetails enforces the corrective-invoice rules
func (r *RegistrationRecord) validateCorrectiveDetails(errs *InvalidRecordError) {
	isCorrective := r.InvoiceType.IsCorrective()

	if isCorrective && r.CorrectiveType == "" {
		errs.add("corrective_type", "required", "missing type for corrective invoice")
	}
	if !isCorrective && r.CorrectiveType != "" {
		errs.add("corrective_type", "forbidden", "this type of invoice cannot have a corrective type")
	}
	if r.CorrectiveType != "" && !r.CorrectiveType.IsValid() {
		errs.addf("corrective_type", "invalid", "unknown corrective type %q", string(r.CorrectiveType))
	}

	if !isCorrective && len(r.CorrectedInvoices) > 0 {
		errs.add("corrected_invoices", "forbidden", "this type of invoice cannot have corrected invoices")
	}

	// Corrected amounts accompany substitution rectifications only
	if r.CorrectiveType == CorrectiveSubstitution {
		if r.CorrectedBaseAmount == "" {
			errs.add("corrected_base_amount", "required",
				"missing corrected base amount for corrective invoice by substitution")
		}
		if r.CorrectedTaxAmount == "" {
			errs.add("corrected_tax_amount", "required",
				"missing corrected tax amount for corrective invoice by substitution")
		}
	} else {
		if r.CorrectedBaseAmount != "" {
			errs.add("corrected_base_amount", "forbidden", "this invoice cannot have a corrected base amount")
		}
		if r.CorrectedTaxAmount != "" {
			errs.add("corrected_tax_amount", "forbidden", "this invoice cannot have a corrected tax amount")
		}
	}
}

// validateTotals checks CuotaTotal and ImporteTotal against the breakdown.
// Lines without base or tax amounts (exempt or non-subject operations)
// leave the totals unchecked.
func (r *RegistrationRecord) validateTotals(errs *InvalidRecordError) {
	if len(r.Breakdown) == 0 || !isValidAmount(r.TotalTaxAmount) || !isValidAmount(r.TotalAmount) {
		return
	}

	taxSum := decimal.Zero
	baseSum := decimal.Zero
	for _, line := range r.Breakdown {
		if line.TaxAmount == "" || line.BaseAmount == "" {
			return
		}
		if !isValidAmount(line.TaxAmount) || !isValidAmount(line.BaseAmount) {
			return
		}
		taxSum = taxSum.Add(mustDecimal(line.TaxAmount))
		baseSum = baseSum.Add(mustDecimal(line.BaseAmount))
	}

	// CuotaTotal matches the line sum exactly, to the last cent
	if !equalsRounded(r.TotalTaxAmount, taxSum) {
		errs.addf("total_tax_amount", "mismatch",
			"expected total tax amount of %s, got %s", taxSum.StringFixed(2), r.TotalTaxAmount)
	}

	// ImporteTotal tolerates rounding slack
	expectedTotal := baseSum.Add(taxSum)
	if !withinTolerance(r.TotalAmount, expectedTotal) {
		errs.addf("total_amount", "mismatch",
			"expected total amount of %s, got %s", expectedTotal.StringFixed(2), r.TotalAmount)
	}
}

// CalculateHash computes the registration fingerprint over the canonical
// unescaped payload
func (r *RegistrationRecord) CalculateHash() string {
	return fingerprint(
		[2]string{"IDEmisorFactura", r.ID.IssuerID},
		[2]string{"NumSerieFactura", r.ID.InvoiceNumber},
		[2]string{"FechaExpedicionFactura", r.ID.IssueDateString()},
		[2]string{"TipoFactura", string(r.InvoiceType)},
		[2]string{"CuotaTotal", r.TotalTaxAmount},
		[2]string{"ImporteTotal", r.TotalAmount},
		[2]string{"Huella", r.PreviousHash},
		[2]string{"FechaHoraHusoGenRegistro", r.GeneratedAtString()},
	)
}

// Seal validates the record and assigns its fingerprint
func (r *RegistrationRecord) Seal() error { return seal(r) }
