package records

import "strings"

// CancellationRecord is a cancellation record (RegistroAnulacion): the
// annulment of a previously registered invoice
type CancellationRecord struct {
	RecordFields

	// Anulacion de un registro que no consta en la AEAT ni en el SIF
	// (SinRegistroPrevio)
	WithoutPriorRecord bool `json:"without_prior_record,omitempty"`

	// Nombre-razon social del obligado que expidio la factura anulada
	// (NombreRazonEmisor). Optional.
	IssuerName string `json:"issuer_name,omitempty"`
}

func (c *CancellationRecord) sealed() {}

// Validate checks every cancellation invariant. The previous pair is
// mandatory here: it marks the record's chain position even when the
// cancelled invoice never reached the AEAT.
func (c *CancellationRecord) Validate() error {
	errs := &InvalidRecordError{}

	if c.IssuerName != "" {
		if strings.TrimSpace(c.IssuerName) == "" {
			errs.add("issuer_name", "blank", "issuer_name cannot be blank")
		} else if len(c.IssuerName) > 120 {
			errs.add("issuer_name", "length", "issuer_name cannot exceed 120 characters")
		}
	}

	c.validateCommon(errs)

	if c.PreviousID == nil {
		errs.add("previous_invoice_id", "required",
			"previous invoice ID is required for all cancellation records")
	}
	if c.PreviousHash == "" {
		errs.add("previous_hash", "required",
			"previous hash is required for all cancellation records")
	}

	validateHashMatches(c, errs)

	return errs.orNil()
}

// CalculateHash computes the cancellation fingerprint over the canonical
// unescaped payload
func (c *CancellationRecord) CalculateHash() string {
	return fingerprint(
		[2]string{"IDEmisorFacturaAnulada", c.ID.IssuerID},
		[2]string{"NumSerieFacturaAnulada", c.ID.InvoiceNumber},
		[2]string{"FechaExpedicionFacturaAnulada", c.ID.IssueDateString()},
		[2]string{"Huella", c.PreviousHash},
		[2]string{"FechaHoraHusoGenRegistro", c.GeneratedAtString()},
	)
}

// Seal validates the record and assigns its fingerprint
func (c *CancellationRecord) Seal() error { return seal(c) }
