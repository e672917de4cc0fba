// Package responses decodes the SOAP payloads the AEAT returns for
// record submissions and invoice consultations.
package responses

// Namespace URIs of the AEAT response schemas. Prefixes vary between
// environments; lookups match on URI plus local name.
const (
	nsSoapEnv        = "http://schemas.xmlsoap.org/soap/envelope/"
	nsAEATBase       = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/"
	nsSuministroInfo = nsAEATBase + "SuministroInformacion.xsd"
	nsRespuestaSum   = nsAEATBase + "RespuestaSuministro.xsd"
	nsRespuestaCons  = nsAEATBase + "RespuestaConsultaLR.xsd"
)

// Status is the global outcome of a submission (EstadoEnvio)
type Status string

const (
	// Todos los registros de la remision son correctos
	StatusCorrect Status = "Correcto"

	// Algunos registros son incorrectos o se aceptaron con errores
	StatusPartiallyCorrect Status = "ParcialmenteCorrecto"

	// Todos los registros de la remision son incorrectos
	StatusIncorrect Status = "Incorrecto"
)

// IsValid checks if the status is one of the allowed codes
func (s Status) IsValid() bool {
	return s == StatusCorrect || s == StatusPartiallyCorrect || s == StatusIncorrect
}

// ItemStatus is the per-record outcome of a submission (EstadoRegistro)
type ItemStatus string

const (
	// El registro es totalmente correcto y queda registrado
	ItemCorrect ItemStatus = "Correcto"

	// El registro tiene errores que no provocan su rechazo
	ItemAcceptedWithErrors ItemStatus = "AceptadoConErrores"

	// El registro tiene errores que provocan su rechazo
	ItemIncorrect ItemStatus = "Incorrecto"
)

// IsValid checks if the item status is one of the allowed codes
func (s ItemStatus) IsValid() bool {
	return s == ItemCorrect || s == ItemAcceptedWithErrors || s == ItemIncorrect
}

// RecordType is the operation kind reported per item (TipoOperacion)
type RecordType string

const (
	// Registro de alta
	RecordRegistration RecordType = "Alta"

	// Registro de anulacion
	RecordCancellation RecordType = "Anulacion"
)

// IsValid checks if the record type is one of the allowed codes
func (t RecordType) IsValid() bool {
	return t == RecordRegistration || t == RecordCancellation
}

// QueryResult states whether a consultation matched records
// (ResultadoConsulta)
type QueryResult string

const (
	// La consulta devolvio registros
	QueryWithData QueryResult = "ConDatos"

	// La consulta no devolvio resultados
	QueryWithoutData QueryResult = "SinDatos"
)

// IsValid checks if the query result is one of the allowed codes
func (r QueryResult) IsValid() bool {
	return r == QueryWithData || r == QueryWithoutData
}

// QueryRecordStatus is the current state of a registered invoice
// (EstadoRegistro inside a consultation item)
type QueryRecordStatus string

const (
	// El registro fue aceptado sin errores
	QueryRecordCorrect QueryRecordStatus = "Correcto"

	// El registro fue aceptado con advertencias
	QueryRecordAcceptedWithErrors QueryRecordStatus = "AceptadoConErrores"

	// La factura fue anulada
	QueryRecordCancelled QueryRecordStatus = "Anulado"
)

// IsValid checks if the query record status is one of the allowed codes
func (s QueryRecordStatus) IsValid() bool {
	return s == QueryRecordCorrect || s == QueryRecordAcceptedWithErrors || s == QueryRecordCancelled
}
