package responses

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/facturaIA/verifactu-go/records"
)

// QueryResponse is the outcome of an invoice consultation
// (RespuestaConsultaFactuSistemaFacturacion)
type QueryResponse struct {
	// Ejercicio consultado (PeriodoImputacion/Ejercicio)
	Year int `json:"year"`

	// Periodo consultado (PeriodoImputacion/Periodo)
	Month int `json:"month"`

	// Resultado de la consulta (ResultadoConsulta)
	Result QueryResult `json:"result"`

	// Indicador de paginacion: quedan mas paginas
	// (IndicadorPaginacion = S)
	HasMorePages bool `json:"has_more_pages"`

	// Clave para solicitar la pagina siguiente (ClavePaginacion)
	PaginationKey string `json:"pagination_key,omitempty"`

	// Registros devueltos
	// (RegistroRespuestaConsultaFactuSistemaFacturacion)
	Items []QueryItem `json:"items,omitempty"`
}

// QueryItem is one registered invoice returned by a consultation
type QueryItem struct {
	// Factura consultada (IDFactura)
	InvoiceID records.InvoiceIdentifier `json:"invoice_id"`

	// Nombre-razon social del emisor (NombreRazonEmisor)
	IssuerName string `json:"issuer_name,omitempty"`

	// Tipo de factura (TipoFactura)
	InvoiceType string `json:"invoice_type,omitempty"`

	// Tipo de rectificativa (TipoRectificativa)
	CorrectiveType string `json:"corrective_type,omitempty"`

	// Descripcion de la operacion (DescripcionOperacion)
	Description string `json:"description,omitempty"`

	// Importe total (ImporteTotal)
	TotalAmount string `json:"total_amount,omitempty"`

	// Cuota total (CuotaTotal)
	TotalTaxAmount string `json:"total_tax_amount,omitempty"`

	// Huella del registro (Huella)
	Hash string `json:"hash,omitempty"`

	// Fecha de generacion del registro (FechaHoraHusoGenRegistro)
	RegisteredAt time.Time `json:"registered_at,omitempty"`

	// Destinatarios declarados (Destinatarios/IDDestinatario)
	Recipients []QueryRecipient `json:"recipients,omitempty"`

	// Desglose declarado (Desglose/DetalleDesglose)
	Breakdown []QueryBreakdownLine `json:"breakdown,omitempty"`

	// Estado actual del registro (EstadoRegistro/EstadoRegistro)
	Status QueryRecordStatus `json:"status,omitempty"`

	// Codigo de error (EstadoRegistro/CodigoErrorRegistro)
	ErrorCode string `json:"error_code,omitempty"`

	// Descripcion del error (EstadoRegistro/DescripcionErrorRegistro)
	ErrorDescription string `json:"error_description,omitempty"`

	// Ultima modificacion (EstadoRegistro/TimestampUltimaModificacion)
	LastModified time.Time `json:"last_modified,omitempty"`

	// CSV de la presentacion (DatosPresentacion/CSV)
	CSV string `json:"csv,omitempty"`

	// Timestamp de la presentacion (DatosPresentacion/TimestampPresentacion)
	PresentedAt time.Time `json:"presented_at,omitempty"`

	// Primer registro de la cadena (Encadenamiento/PrimerRegistro = S)
	IsFirstRecord bool `json:"is_first_record"`

	// Registro anterior de la cadena (Encadenamiento/RegistroAnterior)
	PreviousRecord *PreviousRecord `json:"previous_record,omitempty"`
}

// QueryRecipient is a recipient as echoed back by a consultation
type QueryRecipient struct {
	// Nombre-razon social (NombreRazon)
	Name string `json:"name,omitempty"`

	// NIF espanol (NIF)
	NIF string `json:"nif,omitempty"`
}

// QueryBreakdownLine is a breakdown line as echoed back by a consultation
type QueryBreakdownLine struct {
	Tax        string `json:"tax,omitempty"`
	Regime     string `json:"regime,omitempty"`
	Operation  string `json:"operation,omitempty"`
	TaxRate    string `json:"tax_rate,omitempty"`
	BaseAmount string `json:"base_amount,omitempty"`
	TaxAmount  string `json:"tax_amount,omitempty"`
}

// PreviousRecord points at the preceding record of the chain
// (Encadenamiento/RegistroAnterior)
type PreviousRecord struct {
	// NIF del emisor de la factura anterior (IDEmisorFactura)
	IssuerID string `json:"issuer_id,omitempty"`

	// Numero de la factura anterior (NumSerieFactura)
	InvoiceNumber string `json:"invoice_number,omitempty"`

	// Fecha de expedicion de la factura anterior
	// (FechaExpedicionFactura)
	IssueDate time.Time `json:"issue_date,omitempty"`

	// Huella del registro anterior (Huella)
	Hash string `json:"hash,omitempty"`
}

// ParseQuery decodes a consultation response envelope
func ParseQuery(data []byte) (*QueryResponse, error) {
	root, err := readEnvelope(data)
	if err != nil {
		return nil, err
	}

	body := findDeep(root, nsRespuestaCons, "RespuestaConsultaFactuSistemaFacturacion")
	if body == nil {
		return nil, parseErrorf("missing RespuestaConsultaFactuSistemaFacturacion element in response")
	}

	resp := &QueryResponse{Result: QueryWithoutData}

	// Ejercicio and Periodo arrive qualified in either the consultation
	// or the supply namespace depending on the endpoint
	period := child(body, nsRespuestaCons, "PeriodoImputacion")
	if raw := childTextAny(period, "Ejercicio", nsRespuestaCons, nsSuministroInfo); raw != "" {
		resp.Year, err = strconv.Atoi(raw)
		if err != nil {
			return nil, parseErrorf("invalid year value: %s", raw)
		}
	}
	if raw := childTextAny(period, "Periodo", nsRespuestaCons, nsSuministroInfo); raw != "" {
		resp.Month, err = strconv.Atoi(raw)
		if err != nil {
			return nil, parseErrorf("invalid month value: %s", raw)
		}
	}

	if result := childText(body, nsRespuestaCons, "ResultadoConsulta"); result != "" {
		resp.Result = QueryResult(result)
	}
	resp.HasMorePages = childText(body, nsRespuestaCons, "IndicadorPaginacion") == "S"
	resp.PaginationKey = childText(body, nsRespuestaCons, "ClavePaginacion")

	for _, itemEl := range children(body, nsRespuestaCons, "RegistroRespuestaConsultaFactuSistemaFacturacion") {
		item, err := parseQueryItem(itemEl)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, item)
	}

	return resp, nil
}

// parseQueryItem decodes one consultation record. The AEAT mixes the
// consultation and supply namespaces inside a single item.
func parseQueryItem(itemEl *etree.Element) (QueryItem, error) {
	var item QueryItem

	idEl := child(itemEl, nsRespuestaCons, "IDFactura")
	item.InvoiceID.IssuerID = childText(idEl, nsSuministroInfo, "IDEmisorFactura")
	item.InvoiceID.InvoiceNumber = childText(idEl, nsSuministroInfo, "NumSerieFactura")
	if raw := childText(idEl, nsSuministroInfo, "FechaExpedicionFactura"); raw != "" {
		date, err := time.Parse("02-01-2006", raw)
		if err != nil {
			return item, parseErrorf("invalid invoice issue date: %s", raw)
		}
		item.InvoiceID.IssueDate = date
	}

	datos := child(itemEl, nsRespuestaCons, "DatosRegistroFacturacion")
	item.IssuerName = childText(datos, nsRespuestaCons, "NombreRazonEmisor")
	item.InvoiceType = childText(datos, nsRespuestaCons, "TipoFactura")
	item.CorrectiveType = childText(datos, nsRespuestaCons, "TipoRectificativa")
	item.Description = childText(datos, nsRespuestaCons, "DescripcionOperacion")
	item.TotalAmount = childText(datos, nsRespuestaCons, "ImporteTotal")
	item.TotalTaxAmount = childText(datos, nsRespuestaCons, "CuotaTotal")
	item.Hash = childText(datos, nsRespuestaCons, "Huella")

	if raw := childText(datos, nsRespuestaCons, "FechaHoraHusoGenRegistro"); raw != "" {
		if stamp, err := parseISOTimestamp(raw); err == nil {
			item.RegisteredAt = stamp
		}
	}

	if dest := child(datos, nsRespuestaCons, "Destinatarios"); dest != nil {
		for _, rec := range children(dest, nsRespuestaCons, "IDDestinatario") {
			item.Recipients = append(item.Recipients, QueryRecipient{
				Name: childText(rec, nsSuministroInfo, "NombreRazon"),
				NIF:  childText(rec, nsSuministroInfo, "NIF"),
			})
		}
	}

	if desglose := child(datos, nsRespuestaCons, "Desglose"); desglose != nil {
		for _, det := range children(desglose, nsSuministroInfo, "DetalleDesglose") {
			item.Breakdown = append(item.Breakdown, QueryBreakdownLine{
				Tax:        childText(det, nsSuministroInfo, "Impuesto"),
				Regime:     childText(det, nsSuministroInfo, "ClaveRegimen"),
				Operation:  childText(det, nsSuministroInfo, "CalificacionOperacion"),
				TaxRate:    childText(det, nsSuministroInfo, "TipoImpositivo"),
				BaseAmount: childText(det, nsSuministroInfo, "BaseImponibleOimporteNoSujeto"),
				TaxAmount:  childText(det, nsSuministroInfo, "CuotaRepercutida"),
			})
		}
	}

	chain := child(datos, nsRespuestaCons, "Encadenamiento")
	item.IsFirstRecord = childText(chain, nsRespuestaCons, "PrimerRegistro") == "S"
	if prev := child(chain, nsRespuestaCons, "RegistroAnterior"); prev != nil {
		record := &PreviousRecord{
			IssuerID:      childText(prev, nsSuministroInfo, "IDEmisorFactura"),
			InvoiceNumber: childText(prev, nsSuministroInfo, "NumSerieFactura"),
			Hash:          childText(prev, nsSuministroInfo, "Huella"),
		}
		if raw := childText(prev, nsSuministroInfo, "FechaExpedicionFactura"); raw != "" {
			if date, err := time.Parse("02-01-2006", raw); err == nil {
				record.IssueDate = date
			}
		}
		item.PreviousRecord = record
	}

	estado := child(itemEl, nsRespuestaCons, "EstadoRegistro")
	if status := childText(estado, nsRespuestaCons, "EstadoRegistro"); status != "" {
		if s := QueryRecordStatus(status); s.IsValid() {
			item.Status = s
		}
	}
	item.ErrorCode = childText(estado, nsRespuestaCons, "CodigoErrorRegistro")
	item.ErrorDescription = childText(estado, nsRespuestaCons, "DescripcionErrorRegistro")
	if raw := childText(estado, nsRespuestaCons, "TimestampUltimaModificacion"); raw != "" {
		if stamp, err := parseISOTimestamp(raw); err == nil {
			item.LastModified = stamp
		}
	}

	presentacion := child(itemEl, nsRespuestaCons, "DatosPresentacion")
	item.CSV = childText(presentacion, nsSuministroInfo, "CSV")
	if raw := childText(presentacion, nsSuministroInfo, "TimestampPresentacion"); raw != "" {
		if stamp, err := parseISOTimestamp(raw); err == nil {
			item.PresentedAt = stamp
		}
	}

	return item, nil
}
