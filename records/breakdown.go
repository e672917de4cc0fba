package records

import "github.com/shopspring/decimal"

// BreakdownLine is one tax breakdown entry of an invoice (DetalleDesglose)
type BreakdownLine struct {
	// Impuesto de aplicacion (Impuesto)
	Tax TaxType `json:"tax"`

	// Clave del regimen del impuesto (ClaveRegimen)
	Regime RegimeType `json:"regime"`

	// Calificacion de la operacion o causa de exencion
	// (CalificacionOperacion / OperacionExenta)
	Operation OperationType `json:"operation"`

	// Base imponible o importe no sujeto (BaseImponibleOimporteNoSujeto)
	BaseAmount string `json:"base_amount"`

	// Porcentaje aplicado sobre la base imponible (TipoImpositivo).
	// Empty means absent.
	TaxRate string `json:"tax_rate,omitempty"`

	// Cuota resultante (CuotaRepercutida). Empty means absent.
	TaxAmount string `json:"tax_amount,omitempty"`
}

// Validate checks the line's formats, the operation-type rules and the
// derived tax amount
func (b BreakdownLine) Validate() error {
	errs := &InvalidRecordError{}

	if !b.Tax.IsValid() {
		errs.addf("tax", "invalid", "unknown tax type %q", string(b.Tax))
	}
	if !b.Regime.IsValid() {
		errs.addf("regime", "invalid", "unknown regime type %q", string(b.Regime))
	}
	if !b.Operation.IsValid() {
		errs.addf("operation", "invalid", "unknown operation type %q", string(b.Operation))
	}
	if !isValidAmount(b.BaseAmount) {
		errs.add("base_amount", "format", `base_amount must match -?\d{1,12}.\d{2} (e.g. "100.00")`)
	}
	if b.TaxRate != "" && !isValidRate(b.TaxRate) {
		errs.add("tax_rate", "format", `tax_rate must match \d{1,3}.\d{2} (e.g. "21.00")`)
	}
	if b.TaxAmount != "" && !isValidAmount(b.TaxAmount) {
		errs.add("tax_amount", "format", `tax_amount must match -?\d{1,12}.\d{2} (e.g. "21.00")`)
	}

	// Rate and amount are mandatory for subject operations and forbidden
	// for non-subject and exempt ones
	if b.Operation.IsSubject() {
		if b.TaxRate == "" {
			errs.add("tax_rate", "required", "tax rate must be defined for subject operation types")
		}
		if b.TaxAmount == "" {
			errs.add("tax_amount", "required", "tax amount must be defined for subject operation types")
		}
	} else if b.Operation.IsValid() {
		if b.TaxRate != "" {
			errs.add("tax_rate", "forbidden", "tax rate cannot be defined for non-subject or exempt operation types")
		}
		if b.TaxAmount != "" {
			errs.add("tax_amount", "forbidden", "tax amount cannot be defined for non-subject or exempt operation types")
		}
	}

	// CuotaRepercutida must be base * rate within the accepted slack
	if isValidAmount(b.BaseAmount) && isValidRate(b.TaxRate) && isValidAmount(b.TaxAmount) {
		expected := mustDecimal(b.BaseAmount).Mul(mustDecimal(b.TaxRate)).Div(decimal.NewFromInt(100))
		if !withinTolerance(b.TaxAmount, expected) {
			errs.addf("tax_amount", "mismatch",
				"expected tax amount of %s, got %s", expected.Round(2).StringFixed(2), b.TaxAmount)
		}
	}

	return errs.orNil()
}
