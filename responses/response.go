package responses

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/facturaIA/verifactu-go/records"
)

// Response is the outcome of a record submission
// (RespuestaRegFactuSistemaFacturacion)
type Response struct {
	// CSV asociado al envio, cuando la AEAT lo genera (CSV)
	CSV string `json:"csv,omitempty"`

	// Timestamp de la presentacion
	// (DatosPresentacion/TimestampPresentacion)
	SubmittedAt time.Time `json:"submitted_at,omitempty"`

	// Segundos de espera exigidos antes del siguiente envio
	// (TiempoEsperaEnvio)
	WaitSeconds int `json:"wait_seconds"`

	// Estado global del envio (EstadoEnvio)
	Status Status `json:"status"`

	// Estado detallado de cada linea (RespuestaLinea)
	Items []Item `json:"items,omitempty"`
}

// Item is the reported outcome of a single record (RespuestaLinea)
type Item struct {
	// Factura a la que se refiere la linea (IDFactura)
	InvoiceID records.InvoiceIdentifier `json:"invoice_id"`

	// Tipo de operacion del registro (Operacion/TipoOperacion)
	RecordType RecordType `json:"record_type"`

	// Indicador de subsanacion (Operacion/Subsanacion)
	IsCorrection bool `json:"is_correction"`

	// Estado del registro (EstadoRegistro)
	Status ItemStatus `json:"status"`

	// Codigo de error, si el registro fue rechazado o aceptado con
	// errores (CodigoErrorRegistro)
	ErrorCode string `json:"error_code,omitempty"`

	// Descripcion del error (DescripcionErrorRegistro)
	ErrorDescription string `json:"error_description,omitempty"`
}

// Parse decodes a submission response envelope. A SOAP fault yields a
// *ServerError; an undecodable payload yields a *ParseError.
func Parse(data []byte) (*Response, error) {
	root, err := readEnvelope(data)
	if err != nil {
		return nil, err
	}

	body := findDeep(root, nsRespuestaSum, "RespuestaRegFactuSistemaFacturacion")
	if body == nil {
		return nil, parseErrorf("missing RespuestaRegFactuSistemaFacturacion element in response")
	}

	resp := &Response{
		CSV:    childText(body, nsRespuestaSum, "CSV"),
		Status: StatusIncorrect,
	}

	if stamp := descend(body,
		[2]string{nsRespuestaSum, "DatosPresentacion"},
		[2]string{nsSuministroInfo, "TimestampPresentacion"},
	); stamp != nil && stamp.Text() != "" {
		resp.SubmittedAt, err = parseISOTimestamp(stamp.Text())
		if err != nil {
			return nil, parseErrorf("invalid submitted at date: %s", stamp.Text())
		}
	}

	if wait := childText(body, nsRespuestaSum, "TiempoEsperaEnvio"); wait != "" {
		resp.WaitSeconds, err = strconv.Atoi(wait)
		if err != nil {
			return nil, parseErrorf("invalid wait seconds value: %s", wait)
		}
	}

	if status := childText(body, nsRespuestaSum, "EstadoEnvio"); status != "" {
		resp.Status = Status(status)
	}

	for _, line := range children(body, nsRespuestaSum, "RespuestaLinea") {
		item, err := parseItem(line)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, item)
	}

	return resp, nil
}

// parseItem decodes one RespuestaLinea element
func parseItem(line *etree.Element) (Item, error) {
	item := Item{
		RecordType: RecordRegistration,
		Status:     ItemIncorrect,
	}

	idEl := child(line, nsRespuestaSum, "IDFactura")
	item.InvoiceID.IssuerID = childText(idEl, nsSuministroInfo, "IDEmisorFactura")
	item.InvoiceID.InvoiceNumber = childText(idEl, nsSuministroInfo, "NumSerieFactura")
	if raw := childText(idEl, nsSuministroInfo, "FechaExpedicionFactura"); raw != "" {
		date, err := time.Parse("02-01-2006", raw)
		if err != nil {
			return item, parseErrorf("invalid invoice issue date: %s", raw)
		}
		item.InvoiceID.IssueDate = date
	}

	operation := child(line, nsRespuestaSum, "Operacion")
	if rt := childText(operation, nsSuministroInfo, "TipoOperacion"); rt != "" {
		item.RecordType = RecordType(rt)
	}
	item.IsCorrection = childText(operation, nsSuministroInfo, "Subsanacion") == "S"

	if status := childText(line, nsRespuestaSum, "EstadoRegistro"); status != "" {
		item.Status = ItemStatus(status)
	}
	item.ErrorCode = childText(line, nsRespuestaSum, "CodigoErrorRegistro")
	item.ErrorDescription = childText(line, nsRespuestaSum, "DescripcionErrorRegistro")

	return item, nil
}

// readEnvelope parses the raw XML and surfaces SOAP faults
func readEnvelope(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Message: "failed to parse XML response", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, parseErrorf("empty XML response")
	}

	if fault := findDeep(root, nsSoapEnv, "Fault"); fault != nil {
		// SOAP 1.1 fault children are unqualified
		if msg := childText(fault, "", "faultstring"); msg != "" {
			return nil, &ServerError{Fault: msg}
		}
		return nil, &ServerError{Fault: "unknown server fault"}
	}

	return root, nil
}

// parseISOTimestamp accepts ISO-8601 stamps with an offset or a trailing Z
func parseISOTimestamp(v string) (time.Time, error) {
	return time.Parse(time.RFC3339, v)
}
