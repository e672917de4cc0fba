package records

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// timestampLayout is the AEAT canonical generation-timestamp format
// (FechaHoraHusoGenRegistro): second precision with a mandatory UTC offset
const timestampLayout = "2006-01-02T15:04:05-07:00"

// HashAlgorithmSHA256 is the only fingerprint algorithm AEAT defines
// (TipoHuella)
const HashAlgorithmSHA256 = "01"

// Record is the common interface of registration and cancellation records.
// Implementations are *RegistrationRecord and *CancellationRecord only.
type Record interface {
	// Validate checks every invariant and returns an *InvalidRecordError
	// listing all violations found
	Validate() error

	// CalculateHash computes the record fingerprint from its current
	// field values
	CalculateHash() string

	// Seal validates the record and assigns the computed fingerprint.
	// A sealed record must not be modified afterwards.
	Seal() error

	// InvoiceID returns the invoice this record refers to
	InvoiceID() InvoiceIdentifier

	// Fields exposes the shared record fields
	Fields() *RecordFields

	sealed()
}

// RecordFields holds the fields shared by both record variants
type RecordFields struct {
	// Identificador de la factura (IDFactura)
	ID InvoiceIdentifier `json:"invoice_id"`

	// Factura del registro anterior de la cadena
	// (Encadenamiento/RegistroAnterior). Nil marks the chain head.
	PreviousID *InvoiceIdentifier `json:"previous_invoice_id,omitempty"`

	// Huella del registro de facturacion anterior
	// (Encadenamiento/RegistroAnterior/Huella)
	PreviousHash string `json:"previous_hash,omitempty"`

	// Huella de este registro (Huella). Empty until Seal assigns it.
	Hash string `json:"hash,omitempty"`

	// Fecha, hora y huso horario de generacion del registro
	// (FechaHoraHusoGenRegistro)
	GeneratedAt time.Time `json:"generated_at"`

	// Indicador de rechazo previo (RechazoPrevio): S, N or X
	PreviousRejection string `json:"previous_rejection,omitempty"`

	// Indicador de subsanacion (Subsanacion): S or N
	Correction string `json:"correction,omitempty"`

	// Referencia externa (RefExterna)
	ExternalReference string `json:"external_reference,omitempty"`
}

// Fields implements Record
func (f *RecordFields) Fields() *RecordFields { return f }

// InvoiceID implements Record
func (f *RecordFields) InvoiceID() InvoiceIdentifier { return f.ID }

// IsChainHead reports whether the record opens a chain (PrimerRegistro)
func (f *RecordFields) IsChainHead() bool { return f.PreviousID == nil }

// GeneratedAtString formats the generation timestamp in the canonical
// AEAT layout. The offset rendered is whatever the time value carries;
// construct values with time.Local to attach the host's wall-clock offset.
func (f *RecordFields) GeneratedAtString() string {
	return f.GeneratedAt.Format(timestampLayout)
}

// validateCommon checks the shared-field invariants, appending to errs
func (f *RecordFields) validateCommon(errs *InvalidRecordError) {
	errs.merge("invoice_id", f.ID.Validate())

	if f.PreviousID != nil {
		errs.merge("previous_invoice_id", f.PreviousID.Validate())
	}
	if f.PreviousHash != "" && !isValidHash(f.PreviousHash) {
		errs.add("previous_hash", "format", "previous_hash must be 64 uppercase hexadecimal characters")
	}
	if f.Hash != "" && !isValidHash(f.Hash) {
		errs.add("hash", "format", "hash must be 64 uppercase hexadecimal characters")
	}
	if f.GeneratedAt.IsZero() {
		errs.add("generated_at", "blank", "generated_at is required")
	}
	if len(f.ExternalReference) > 60 {
		errs.add("external_reference", "length", "external_reference cannot exceed 60 characters")
	}

	switch f.PreviousRejection {
	case "", "S", "N", "X":
	default:
		errs.add("previous_rejection", "invalid", `previous_rejection must be "S", "N" or "X"`)
	}
	switch f.Correction {
	case "", "S", "N":
	default:
		errs.add("correction", "invalid", `correction must be "S" or "N"`)
	}

	// RechazoPrevio=X solo si Subsanacion=S
	if f.PreviousRejection == "X" && f.Correction != "S" {
		errs.add("previous_rejection", "requires_correction",
			`previous_rejection can only be "X" if correction is "S"`)
	}
	// Subsanacion=N no puede coexistir con RechazoPrevio=S o X
	if f.Correction == "N" && (f.PreviousRejection == "S" || f.PreviousRejection == "X") {
		errs.add("correction", "conflict",
			`correction cannot be "N" if previous_rejection is "S" or "X"`)
	}
	// Subsanacion=S requiere RechazoPrevio distinto de N
	if f.Correction == "S" && f.PreviousRejection == "N" {
		errs.add("correction", "conflict",
			`correction can only be "S" if previous_rejection is "S" or "X"`)
	}

	// The previous pair travels together: identifier and hash, both or
	// neither
	if f.PreviousID != nil && f.PreviousHash == "" {
		errs.add("previous_hash", "required",
			"previous hash is required if previous invoice ID is provided")
	}
	if f.PreviousHash != "" && f.PreviousID == nil {
		errs.add("previous_invoice_id", "required",
			"previous invoice ID is required if previous hash is provided")
	}
}

// validateHashMatches checks an already-assigned fingerprint against the
// value recomputed from the record fields
func validateHashMatches(r Record, errs *InvalidRecordError) {
	hash := r.Fields().Hash
	if hash == "" || !isValidHash(hash) {
		return
	}
	if expected := r.CalculateHash(); hash != expected {
		errs.addf("hash", "mismatch", "invalid hash, expected value %s", expected)
	}
}

// seal validates a record and assigns the computed fingerprint
func seal(r Record) error {
	f := r.Fields()
	f.Hash = ""
	if err := r.Validate(); err != nil {
		return err
	}
	f.Hash = r.CalculateHash()
	return nil
}

// fingerprint hashes the canonical key=value payload. Values are inserted
// verbatim, with no URL or XML escaping: the AEAT payload definition
// mandates unescaped bytes.
func fingerprint(pairs ...[2]string) string {
	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv[0])
		b.WriteByte('=')
		b.WriteString(kv[1])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return strings.ToUpper(fmt.Sprintf("%x", sum))
}
