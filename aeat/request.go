package aeat

import (
	"github.com/beevik/etree"

	"github.com/facturaIA/verifactu-go/query"
	"github.com/facturaIA/verifactu-go/records"
)

// AEAT schema namespaces for the VERI*FACTU SOAP service
const (
	nsSoapEnv       = "http://schemas.xmlsoap.org/soap/envelope/"
	nsAEATBase      = "https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/"
	nsSuministroLR  = nsAEATBase + "SuministroLR.xsd"
	nsSuministroInf = nsAEATBase + "SuministroInformacion.xsd"
	nsConsultaLR    = nsAEATBase + "ConsultaLR.xsd"
)

// buildSubmission serializes a batch of sealed records into the
// RegFactuSistemaFacturacion SOAP envelope
func (c *Client) buildSubmission(batch []records.Record, incident bool) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("soapenv:Envelope")
	envelope.CreateAttr("xmlns:soapenv", nsSoapEnv)
	envelope.CreateAttr("xmlns:sum", nsSuministroLR)
	envelope.CreateAttr("xmlns:sum1", nsSuministroInf)
	envelope.CreateElement("soapenv:Header")
	body := envelope.CreateElement("soapenv:Body")

	root := body.CreateElement("sum:RegFactuSistemaFacturacion")

	cabecera := root.CreateElement("sum:Cabecera")
	obligado := cabecera.CreateElement("sum1:ObligadoEmision")
	obligado.CreateElement("sum1:NombreRazon").SetText(c.taxpayer.Name)
	obligado.CreateElement("sum1:NIF").SetText(c.taxpayer.NIF)
	if c.representative != nil {
		rep := cabecera.CreateElement("sum1:Representante")
		rep.CreateElement("sum1:NombreRazon").SetText(c.representative.Name)
		rep.CreateElement("sum1:NIF").SetText(c.representative.NIF)
	}
	if incident {
		remision := cabecera.CreateElement("sum1:RemisionVoluntaria")
		remision.CreateElement("sum1:Incidencia").SetText("S")
	}

	for _, record := range batch {
		c.exportRecord(root, record)
	}

	return doc.WriteToBytes()
}

// exportRecord appends one sum:RegistroFactura to the submission root
func (c *Client) exportRecord(root *etree.Element, record records.Record) {
	registroFactura := root.CreateElement("sum:RegistroFactura")

	var el *etree.Element
	switch r := record.(type) {
	case *records.RegistrationRecord:
		el = registroFactura.CreateElement("sum1:RegistroAlta")
		el.CreateElement("sum1:IDVersion").SetText("1.0")
		exportRegistration(el, r)
	case *records.CancellationRecord:
		el = registroFactura.CreateElement("sum1:RegistroAnulacion")
		el.CreateElement("sum1:IDVersion").SetText("1.0")
		exportCancellation(el, r)
	default:
		return
	}

	f := record.Fields()
	addChaining(el, f)
	c.addComputerSystem(el)

	el.CreateElement("sum1:FechaHoraHusoGenRegistro").SetText(f.GeneratedAtString())
	el.CreateElement("sum1:TipoHuella").SetText(records.HashAlgorithmSHA256)
	el.CreateElement("sum1:Huella").SetText(f.Hash)

	if f.PreviousRejection != "" {
		el.CreateElement("sum1:RechazoPrevio").SetText(f.PreviousRejection)
	}
	if f.Correction != "" {
		el.CreateElement("sum1:Subsanacion").SetText(f.Correction)
	}
	if f.ExternalReference != "" {
		el.CreateElement("sum1:RefExterna").SetText(f.ExternalReference)
	}
}

// exportRegistration writes the RegistroAlta body
func exportRegistration(el *etree.Element, r *records.RegistrationRecord) {
	addInvoiceID(el, "sum1:IDFactura", r.ID)

	el.CreateElement("sum1:NombreRazonEmisor").SetText(r.IssuerName)
	el.CreateElement("sum1:TipoFactura").SetText(string(r.InvoiceType))

	if r.CorrectiveType != "" {
		el.CreateElement("sum1:TipoRectificativa").SetText(string(r.CorrectiveType))
	}
	if len(r.CorrectedInvoices) > 0 {
		rectificadas := el.CreateElement("sum1:FacturasRectificadas")
		for _, id := range r.CorrectedInvoices {
			addInvoiceID(rectificadas, "sum1:IDFacturaRectificada", id)
		}
	}
	if len(r.ReplacedInvoices) > 0 {
		sustituidas := el.CreateElement("sum1:FacturasSustituidas")
		for _, id := range r.ReplacedInvoices {
			addInvoiceID(sustituidas, "sum1:IDFacturaSustituida", id)
		}
	}
	if r.CorrectedBaseAmount != "" || r.CorrectedTaxAmount != "" {
		importe := el.CreateElement("sum1:ImporteRectificacion")
		importe.CreateElement("sum1:BaseRectificada").SetText(r.CorrectedBaseAmount)
		importe.CreateElement("sum1:CuotaRectificada").SetText(r.CorrectedTaxAmount)
	}

	if r.Description != "" {
		el.CreateElement("sum1:DescripcionOperacion").SetText(r.Description)
	}

	if len(r.Recipients) > 0 {
		destinatarios := el.CreateElement("sum1:Destinatarios")
		for _, recipient := range r.Recipients {
			addRecipient(destinatarios, recipient)
		}
	}

	desglose := el.CreateElement("sum1:Desglose")
	for _, line := range r.Breakdown {
		detalle := desglose.CreateElement("sum1:DetalleDesglose")
		detalle.CreateElement("sum1:Impuesto").SetText(string(line.Tax))
		detalle.CreateElement("sum1:ClaveRegimen").SetText(string(line.Regime))
		detalle.CreateElement("sum1:CalificacionOperacion").SetText(string(line.Operation))
		if line.TaxRate != "" {
			detalle.CreateElement("sum1:TipoImpositivo").SetText(line.TaxRate)
		}
		detalle.CreateElement("sum1:BaseImponibleOimporteNoSujeto").SetText(line.BaseAmount)
		if line.TaxAmount != "" {
			detalle.CreateElement("sum1:CuotaRepercutida").SetText(line.TaxAmount)
		}
	}

	el.CreateElement("sum1:CuotaTotal").SetText(r.TotalTaxAmount)
	el.CreateElement("sum1:ImporteTotal").SetText(r.TotalAmount)
}

// exportCancellation writes the RegistroAnulacion body. The XSD type
// carries no TipoFactura.
func exportCancellation(el *etree.Element, c *records.CancellationRecord) {
	addInvoiceID(el, "sum1:IDFactura", c.ID)
	if c.IssuerName != "" {
		el.CreateElement("sum1:NombreRazonEmisor").SetText(c.IssuerName)
	}
	if c.WithoutPriorRecord {
		el.CreateElement("sum1:SinRegistroPrevio").SetText("S")
	}
}

// addRecipient writes one IDDestinatario, domestic or foreign
func addRecipient(parent *etree.Element, recipient records.Recipient) {
	dest := parent.CreateElement("sum1:IDDestinatario")
	switch r := recipient.(type) {
	case records.FiscalIdentifier:
		dest.CreateElement("sum1:NombreRazon").SetText(r.Name)
		dest.CreateElement("sum1:NIF").SetText(r.NIF)
	case records.ForeignFiscalIdentifier:
		dest.CreateElement("sum1:NombreRazon").SetText(r.Name)
		idOtro := dest.CreateElement("sum1:IDOtro")
		idOtro.CreateElement("sum1:CodigoPais").SetText(r.Country)
		idOtro.CreateElement("sum1:IDType").SetText(string(r.Type))
		idOtro.CreateElement("sum1:ID").SetText(r.Value)
	}
}

// addInvoiceID writes an invoice identifier under the given element name
func addInvoiceID(parent *etree.Element, tag string, id records.InvoiceIdentifier) {
	factura := parent.CreateElement(tag)
	factura.CreateElement("sum1:IDEmisorFactura").SetText(id.IssuerID)
	factura.CreateElement("sum1:NumSerieFactura").SetText(id.InvoiceNumber)
	factura.CreateElement("sum1:FechaExpedicionFactura").SetText(id.IssueDateString())
}

// addChaining writes the Encadenamiento block: PrimerRegistro for the
// chain head, RegistroAnterior otherwise
func addChaining(el *etree.Element, f *records.RecordFields) {
	encadenamiento := el.CreateElement("sum1:Encadenamiento")
	if f.IsChainHead() {
		encadenamiento.CreateElement("sum1:PrimerRegistro").SetText("S")
		return
	}
	anterior := encadenamiento.CreateElement("sum1:RegistroAnterior")
	anterior.CreateElement("sum1:IDEmisorFactura").SetText(f.PreviousID.IssuerID)
	anterior.CreateElement("sum1:NumSerieFactura").SetText(f.PreviousID.InvoiceNumber)
	anterior.CreateElement("sum1:FechaExpedicionFactura").SetText(f.PreviousID.IssueDateString())
	anterior.CreateElement("sum1:Huella").SetText(f.PreviousHash)
}

// addComputerSystem writes the SistemaInformatico block
func (c *Client) addComputerSystem(el *etree.Element) {
	sistema := el.CreateElement("sum1:SistemaInformatico")
	sistema.CreateElement("sum1:NombreRazon").SetText(c.system.VendorName)
	sistema.CreateElement("sum1:NIF").SetText(c.system.VendorNIF)
	sistema.CreateElement("sum1:NombreSistemaInformatico").SetText(c.system.Name)
	sistema.CreateElement("sum1:IdSistemaInformatico").SetText(c.system.ID)
	sistema.CreateElement("sum1:Version").SetText(c.system.Version)
	sistema.CreateElement("sum1:NumeroInstalacion").SetText(c.system.InstallationNumber)
	sistema.CreateElement("sum1:TipoUsoPosibleSoloVerifactu").SetText(boolToSN(c.system.OnlySupportsVerifactu))
	sistema.CreateElement("sum1:TipoUsoPosibleMultiOT").SetText(boolToSN(c.system.SupportsMultipleTaxpayers))
	sistema.CreateElement("sum1:IndicadorMultiplesOT").SetText(boolToSN(c.system.HasMultipleTaxpayers))
}

// buildQuery serializes a consultation filter into the
// ConsultaFactuSistemaFacturacion SOAP envelope
func (c *Client) buildQuery(filter *query.Filter) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("soapenv:Envelope")
	envelope.CreateAttr("xmlns:soapenv", nsSoapEnv)
	envelope.CreateAttr("xmlns:con", nsConsultaLR)
	envelope.CreateAttr("xmlns:sum1", nsSuministroInf)
	envelope.CreateElement("soapenv:Header")
	body := envelope.CreateElement("soapenv:Body")

	root := body.CreateElement("con:ConsultaFactuSistemaFacturacion")

	cabecera := root.CreateElement("con:Cabecera")
	cabecera.CreateElement("sum1:IDVersion").SetText("1.0")
	obligado := cabecera.CreateElement("sum1:ObligadoEmision")
	obligado.CreateElement("sum1:NombreRazon").SetText(c.taxpayer.Name)
	obligado.CreateElement("sum1:NIF").SetText(c.taxpayer.NIF)
	if c.representative != nil {
		cabecera.CreateElement("sum1:IndicadorRepresentante").SetText("S")
	}

	filtro := root.CreateElement("con:FiltroConsulta")
	periodo := filtro.CreateElement("con:PeriodoImputacion")
	periodo.CreateElement("sum1:Ejercicio").SetText(filter.Period.Ejercicio())
	periodo.CreateElement("sum1:Periodo").SetText(filter.Period.Periodo())

	if filter.InvoiceNumber != "" {
		filtro.CreateElement("con:NumSerieFactura").SetText(filter.InvoiceNumber)
	}
	if filter.CounterpartyNIF != "" {
		contraparte := filtro.CreateElement("con:Contraparte")
		contraparte.CreateElement("sum1:NIF").SetText(filter.CounterpartyNIF)
	}
	if !filter.DateFrom.IsZero() || !filter.DateTo.IsZero() {
		fecha := filtro.CreateElement("con:FechaExpedicionFactura")
		if !filter.DateFrom.IsZero() {
			fecha.CreateElement("sum1:Desde").SetText(filter.DateFrom.Format("02-01-2006"))
		}
		if !filter.DateTo.IsZero() {
			fecha.CreateElement("sum1:Hasta").SetText(filter.DateTo.Format("02-01-2006"))
		}
	}
	if filter.ExternalReference != "" {
		filtro.CreateElement("con:RefExterna").SetText(filter.ExternalReference)
	}
	if filter.PaginationKey != "" {
		filtro.CreateElement("con:ClavePaginacion").SetText(filter.PaginationKey)
	}

	datos := root.CreateElement("con:DatosAdicionalesRespuesta")
	datos.CreateElement("con:MostrarNombreRazonEmisor").SetText(boolToSN(filter.ShowIssuerName))
	datos.CreateElement("con:MostrarSistemaInformatico").SetText(boolToSN(filter.ShowComputerSystem))

	return doc.WriteToBytes()
}

// boolToSN renders a boolean in the AEAT S/N convention
func boolToSN(b bool) string {
	if b {
		return "S"
	}
	return "N"
}
