// Package aeat submits invoicing records to the AEAT VERI*FACTU
// endpoint and runs period consultations over mTLS.
package aeat

import (
	"strings"

	"github.com/facturaIA/verifactu-go/records"
)

// ComputerSystem describes the invoicing software generating the records
// (SistemaInformatico)
type ComputerSystem struct {
	// Nombre-razon social de la entidad productora (NombreRazon)
	VendorName string `yaml:"vendor_name" json:"vendor_name"`

	// NIF de la entidad productora (NIF)
	VendorNIF string `yaml:"vendor_nif" json:"vendor_nif"`

	// Nombre del sistema informatico de facturacion
	// (NombreSistemaInformatico)
	Name string `yaml:"name" json:"name"`

	// Codigo identificativo del sistema (IdSistemaInformatico)
	ID string `yaml:"id" json:"id"`

	// Version del sistema (Version)
	Version string `yaml:"version" json:"version"`

	// Numero de instalacion (NumeroInstalacion)
	InstallationNumber string `yaml:"installation_number" json:"installation_number"`

	// Solo puede funcionar como VERI*FACTU
	// (TipoUsoPosibleSoloVerifactu)
	OnlySupportsVerifactu bool `yaml:"only_supports_verifactu" json:"only_supports_verifactu"`

	// Permite facturar a varios obligados tributarios
	// (TipoUsoPosibleMultiOT)
	SupportsMultipleTaxpayers bool `yaml:"supports_multiple_taxpayers" json:"supports_multiple_taxpayers"`

	// Esta soportando actualmente mas de un obligado tributario
	// (IndicadorMultiplesOT)
	HasMultipleTaxpayers bool `yaml:"has_multiple_taxpayers" json:"has_multiple_taxpayers"`
}

// Validate checks the system description fields
func (s ComputerSystem) Validate() error {
	errs := &records.InvalidRecordError{}
	checkBlankMax(errs, "vendor_name", s.VendorName, 120)
	if strings.TrimSpace(s.VendorNIF) == "" {
		errs.Errors = append(errs.Errors, records.FieldError{
			Field: "vendor_nif", Code: "blank", Message: "vendor_nif cannot be blank",
		})
	} else if len(s.VendorNIF) != 9 {
		errs.Errors = append(errs.Errors, records.FieldError{
			Field: "vendor_nif", Code: "length", Message: "vendor_nif must be exactly 9 characters",
		})
	}
	checkBlankMax(errs, "name", s.Name, 30)
	checkBlankMax(errs, "id", s.ID, 2)
	checkBlankMax(errs, "version", s.Version, 50)
	checkBlankMax(errs, "installation_number", s.InstallationNumber, 100)
	if len(errs.Errors) == 0 {
		return nil
	}
	return errs
}

// checkBlankMax appends blank and length violations for a required field
func checkBlankMax(errs *records.InvalidRecordError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		errs.Errors = append(errs.Errors, records.FieldError{
			Field: field, Code: "blank", Message: field + " cannot be blank",
		})
	} else if len(value) > max {
		errs.Errors = append(errs.Errors, records.FieldError{
			Field: field, Code: "length", Message: field + " is too long",
		})
	}
}
