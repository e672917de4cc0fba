package records

// InvoiceType identifies the kind of invoice being registered (TipoFactura)
type InvoiceType string

// Invoice types defined by R.D. 1619/2012
const (
	// Factura completa (Art. 6, 7.2 y 7.3)
	InvoiceTypeStandard InvoiceType = "F1"

	// Factura simplificada y facturas sin identificacion del destinatario (Art. 6.1.D)
	InvoiceTypeSimplified InvoiceType = "F2"

	// Factura emitida en sustitucion de facturas simplificadas declaradas
	InvoiceTypeSubstitutive InvoiceType = "F3"

	// Factura rectificativa (Art. 80.1 y 80.2 y error fundado en derecho)
	InvoiceTypeR1 InvoiceType = "R1"

	// Factura rectificativa (Art. 80.3)
	InvoiceTypeR2 InvoiceType = "R2"

	// Factura rectificativa (Art. 80.4)
	InvoiceTypeR3 InvoiceType = "R3"

	// Factura rectificativa (resto)
	InvoiceTypeR4 InvoiceType = "R4"

	// Factura rectificativa en facturas simplificadas
	InvoiceTypeR5 InvoiceType = "R5"
)

// IsValid checks if the invoice type is one of the allowed codes
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeStandard, InvoiceTypeSimplified, InvoiceTypeSubstitutive,
		InvoiceTypeR1, InvoiceTypeR2, InvoiceTypeR3, InvoiceTypeR4, InvoiceTypeR5:
		return true
	}
	return false
}

// IsCorrective reports whether the invoice type is a corrective invoice (R1-R5)
func (t InvoiceType) IsCorrective() bool {
	switch t {
	case InvoiceTypeR1, InvoiceTypeR2, InvoiceTypeR3, InvoiceTypeR4, InvoiceTypeR5:
		return true
	}
	return false
}

// TaxType identifies the tax applied to a breakdown line (Impuesto)
type TaxType string

const (
	// Impuesto sobre el Valor Anadido
	TaxTypeIVA TaxType = "01"

	// Impuesto sobre la Produccion, los Servicios y la Importacion de Ceuta y Melilla
	TaxTypeIPSI TaxType = "02"

	// Impuesto General Indirecto Canario
	TaxTypeIGIC TaxType = "03"

	// Otros
	TaxTypeOther TaxType = "05"
)

// IsValid checks if the tax type is one of the allowed codes
func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypeIVA, TaxTypeIPSI, TaxTypeIGIC, TaxTypeOther:
		return true
	}
	return false
}

// RegimeType is the special regime key of a breakdown line (ClaveRegimen)
type RegimeType string

const (
	// Operacion de regimen general
	RegimeGeneral RegimeType = "01"

	// Exportacion
	RegimeExport RegimeType = "02"

	// Regimen especial de bienes usados, objetos de arte, antiguedades y
	// objetos de coleccion
	RegimeUsedGoods RegimeType = "03"

	// Regimen especial del oro de inversion
	RegimeInvestmentGold RegimeType = "04"

	// Regimen especial de las agencias de viajes
	RegimeTravelAgencies RegimeType = "05"

	// Regimen especial grupo de entidades en IVA (nivel avanzado)
	RegimeVATGroup RegimeType = "06"

	// Regimen especial del criterio de caja
	RegimeCashBasis RegimeType = "07"

	// Operaciones sujetas al IPSI / IGIC
	RegimeIPSIIGIC RegimeType = "08"

	// Mediacion de agencias de viaje en nombre y por cuenta ajena
	RegimeTravelMediation RegimeType = "09"

	// Cobros por cuenta de terceros de honorarios profesionales o derechos
	RegimeThirdPartyCollection RegimeType = "10"

	// Operaciones de arrendamiento de local de negocio
	RegimeBusinessPremisesRental RegimeType = "11"

	// IVA pendiente de devengo en certificaciones de obra (Administracion Publica)
	RegimePendingPublicWorks RegimeType = "14"

	// IVA pendiente de devengo en operaciones de tracto sucesivo
	RegimePendingSuccessiveTract RegimeType = "15"

	// Operacion acogida a OSS e IOSS
	RegimeOSS RegimeType = "17"

	// Recargo de equivalencia
	RegimeEquivalenceSurcharge RegimeType = "18"

	// Regimen Especial de Agricultura, Ganaderia y Pesca
	RegimeAgriculture RegimeType = "19"

	// Regimen simplificado
	RegimeSimplified RegimeType = "20"
)

// IsValid checks if the regime type is one of the allowed codes
func (t RegimeType) IsValid() bool {
	switch t {
	case RegimeGeneral, RegimeExport, RegimeUsedGoods, RegimeInvestmentGold,
		RegimeTravelAgencies, RegimeVATGroup, RegimeCashBasis, RegimeIPSIIGIC,
		RegimeTravelMediation, RegimeThirdPartyCollection, RegimeBusinessPremisesRental,
		RegimePendingPublicWorks, RegimePendingSuccessiveTract, RegimeOSS,
		RegimeEquivalenceSurcharge, RegimeAgriculture, RegimeSimplified:
		return true
	}
	return false
}

// OperationType qualifies a breakdown line operation (CalificacionOperacion)
type OperationType string

const (
	// Operacion sujeta y no exenta, sin inversion del sujeto pasivo
	OperationSubject OperationType = "S1"

	// Operacion sujeta y no exenta, con inversion del sujeto pasivo
	OperationReverseCharge OperationType = "S2"

	// Operacion no sujeta (articulos 7, 14 y otros)
	OperationNonSubject OperationType = "N1"

	// Operacion no sujeta por reglas de localizacion
	OperationNonSubjectByLocation OperationType = "N2"

	// Exenta por el articulo 20
	OperationExemptArt20 OperationType = "E1"

	// Exenta por el articulo 21
	OperationExemptArt21 OperationType = "E2"

	// Exenta por el articulo 22
	OperationExemptArt22 OperationType = "E3"

	// Exenta por los articulos 23 y 24
	OperationExemptArt23And24 OperationType = "E4"

	// Exenta por el articulo 25
	OperationExemptArt25 OperationType = "E5"

	// Exenta por otros
	OperationExemptOther OperationType = "E6"
)

// IsValid checks if the operation type is one of the allowed codes
func (t OperationType) IsValid() bool {
	return t.IsSubject() || t.IsNonSubject() || t.IsExempt()
}

// IsSubject reports whether the operation is subject and not exempt
func (t OperationType) IsSubject() bool {
	return t == OperationSubject || t == OperationReverseCharge
}

// IsNonSubject reports whether the operation is not subject
func (t OperationType) IsNonSubject() bool {
	return t == OperationNonSubject || t == OperationNonSubjectByLocation
}

// IsExempt reports whether the operation is exempt
func (t OperationType) IsExempt() bool {
	switch t {
	case OperationExemptArt20, OperationExemptArt21, OperationExemptArt22,
		OperationExemptArt23And24, OperationExemptArt25, OperationExemptOther:
		return true
	}
	return false
}

// CorrectiveType is the kind of corrective invoice (TipoRectificativa)
type CorrectiveType string

const (
	// Por sustitucion: la rectificativa sustituye completamente a la factura
	// original, que queda anulada
	CorrectiveSubstitution CorrectiveType = "S"

	// Por diferencias: la rectificativa complementa la original corrigiendo
	// unicamente las diferencias; la original sigue siendo valida
	CorrectiveDifferences CorrectiveType = "I"
)

// IsValid checks if the corrective type is one of the allowed codes
func (t CorrectiveType) IsValid() bool {
	return t == CorrectiveSubstitution || t == CorrectiveDifferences
}

// ForeignIDType is the kind of identifier used by a foreign recipient (IDType)
type ForeignIDType string

const (
	// NIF-IVA
	ForeignIDVAT ForeignIDType = "02"

	// Pasaporte
	ForeignIDPassport ForeignIDType = "03"

	// Documento oficial de identificacion del pais de residencia
	ForeignIDNationalID ForeignIDType = "04"

	// Certificado de residencia
	ForeignIDResidence ForeignIDType = "05"

	// Otro documento probatorio
	ForeignIDOther ForeignIDType = "06"

	// No censado
	ForeignIDUnregistered ForeignIDType = "07"
)

// IsValid checks if the foreign ID type is one of the allowed codes
func (t ForeignIDType) IsValid() bool {
	switch t {
	case ForeignIDVAT, ForeignIDPassport, ForeignIDNationalID,
		ForeignIDResidence, ForeignIDOther, ForeignIDUnregistered:
		return true
	}
	return false
}
