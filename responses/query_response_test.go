package responses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryResponseHead = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body>
<tikLRRC:RespuestaConsultaFactuSistemaFacturacion
    xmlns:tik="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/SuministroInformacion.xsd"
    xmlns:tikLRRC="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/RespuestaConsultaLR.xsd">
    <tikLRRC:PeriodoImputacion>
        <tikLRRC:Ejercicio>2025</tikLRRC:Ejercicio>
        <tikLRRC:Periodo>11</tikLRRC:Periodo>
    </tikLRRC:PeriodoImputacion>
    <tikLRRC:IndicadorPaginacion>N</tikLRRC:IndicadorPaginacion>
    <tikLRRC:ResultadoConsulta>ConDatos</tikLRRC:ResultadoConsulta>
    <tikLRRC:RegistroRespuestaConsultaFactuSistemaFacturacion>
        <tikLRRC:IDFactura>
            <tik:IDEmisorFactura>B12345678</tik:IDEmisorFactura>
            <tik:NumSerieFactura>FACT-001</tik:NumSerieFactura>
            <tik:FechaExpedicionFactura>25-11-2025</tik:FechaExpedicionFactura>
        </tikLRRC:IDFactura>
        <tikLRRC:DatosRegistroFacturacion>
            <tikLRRC:NombreRazonEmisor>Test Company</tikLRRC:NombreRazonEmisor>
            <tikLRRC:TipoFactura>F1</tikLRRC:TipoFactura>
            <tikLRRC:DescripcionOperacion>Test invoice</tikLRRC:DescripcionOperacion>
            <tikLRRC:ImporteTotal>121.00</tikLRRC:ImporteTotal>
            <tikLRRC:CuotaTotal>21.00</tikLRRC:CuotaTotal>
            <tikLRRC:Huella>ABC123DEF456</tikLRRC:Huella>
            <tikLRRC:Encadenamiento>
                <tikLRRC:PrimerRegistro>S</tikLRRC:PrimerRegistro>
            </tikLRRC:Encadenamiento>
        </tikLRRC:DatosRegistroFacturacion>
        <tikLRRC:EstadoRegistro>
            <tikLRRC:EstadoRegistro>Correcto</tikLRRC:EstadoRegistro>
        </tikLRRC:EstadoRegistro>
    </tikLRRC:RegistroRespuestaConsultaFactuSistemaFacturacion>
</tikLRRC:RespuestaConsultaFactuSistemaFacturacion>
</env:Body>
</env:Envelope>`

func TestParseQueryFirstRecord(t *testing.T) {
	resp, err := ParseQuery([]byte(queryResponseHead))
	require.NoError(t, err)

	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 11, resp.Month)
	assert.Equal(t, QueryWithData, resp.Result)
	assert.False(t, resp.HasMorePages)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "B12345678", item.InvoiceID.IssuerID)
	assert.Equal(t, "FACT-001", item.InvoiceID.InvoiceNumber)
	assert.Equal(t, "Test Company", item.IssuerName)
	assert.Equal(t, "F1", item.InvoiceType)
	assert.Equal(t, "Test invoice", item.Description)
	assert.Equal(t, "ABC123DEF456", item.Hash)
	assert.Equal(t, QueryRecordCorrect, item.Status)
	assert.True(t, item.IsFirstRecord)
	assert.Nil(t, item.PreviousRecord)
}

const queryResponseChained = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body>
<tikLRRC:RespuestaConsultaFactuSistemaFacturacion
    xmlns:tik="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/SuministroInformacion.xsd"
    xmlns:tikLRRC="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/RespuestaConsultaLR.xsd">
    <tikLRRC:PeriodoImputacion>
        <tikLRRC:Ejercicio>2025</tikLRRC:Ejercicio>
        <tikLRRC:Periodo>11</tikLRRC:Periodo>
    </tikLRRC:PeriodoImputacion>
    <tikLRRC:IndicadorPaginacion>N</tikLRRC:IndicadorPaginacion>
    <tikLRRC:ResultadoConsulta>ConDatos</tikLRRC:ResultadoConsulta>
    <tikLRRC:RegistroRespuestaConsultaFactuSistemaFacturacion>
        <tikLRRC:IDFactura>
            <tik:IDEmisorFactura>B12345678</tik:IDEmisorFactura>
            <tik:NumSerieFactura>FACT-002</tik:NumSerieFactura>
            <tik:FechaExpedicionFactura>26-11-2025</tik:FechaExpedicionFactura>
        </tikLRRC:IDFactura>
        <tikLRRC:DatosRegistroFacturacion>
            <tikLRRC:NombreRazonEmisor>Test Company</tikLRRC:NombreRazonEmisor>
            <tikLRRC:TipoFactura>F1</tikLRRC:TipoFactura>
            <tikLRRC:Huella>DEF789GHI012</tikLRRC:Huella>
            <tikLRRC:Encadenamiento>
                <tikLRRC:RegistroAnterior>
                    <tik:IDEmisorFactura>B12345678</tik:IDEmisorFactura>
                    <tik:NumSerieFactura>FACT-001</tik:NumSerieFactura>
                    <tik:FechaExpedicionFactura>25-11-2025</tik:FechaExpedicionFactura>
                    <tik:Huella>ABC123DEF456</tik:Huella>
                </tikLRRC:RegistroAnterior>
            </tikLRRC:Encadenamiento>
        </tikLRRC:DatosRegistroFacturacion>
        <tikLRRC:EstadoRegistro>
            <tikLRRC:EstadoRegistro>Correcto</tikLRRC:EstadoRegistro>
        </tikLRRC:EstadoRegistro>
    </tikLRRC:RegistroRespuestaConsultaFactuSistemaFacturacion>
</tikLRRC:RespuestaConsultaFactuSistemaFacturacion>
</env:Body>
</env:Envelope>`

func TestParseQueryPreviousRecord(t *testing.T) {
	resp, err := ParseQuery([]byte(queryResponseChained))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "FACT-002", item.InvoiceID.InvoiceNumber)
	assert.Equal(t, "DEF789GHI012", item.Hash)
	assert.False(t, item.IsFirstRecord)
	require.NotNil(t, item.PreviousRecord)
	assert.Equal(t, "B12345678", item.PreviousRecord.IssuerID)
	assert.Equal(t, "FACT-001", item.PreviousRecord.InvoiceNumber)
	assert.Equal(t, "ABC123DEF456", item.PreviousRecord.Hash)
	assert.Equal(t, 25, item.PreviousRecord.IssueDate.Day())
	assert.Equal(t, 11, int(item.PreviousRecord.IssueDate.Month()))
	assert.Equal(t, 2025, item.PreviousRecord.IssueDate.Year())
}

func TestParseQueryWithoutData(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body>
<tikLRRC:RespuestaConsultaFactuSistemaFacturacion
    xmlns:tikLRRC="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/RespuestaConsultaLR.xsd">
    <tikLRRC:PeriodoImputacion>
        <tikLRRC:Ejercicio>2025</tikLRRC:Ejercicio>
        <tikLRRC:Periodo>10</tikLRRC:Periodo>
    </tikLRRC:PeriodoImputacion>
    <tikLRRC:IndicadorPaginacion>N</tikLRRC:IndicadorPaginacion>
    <tikLRRC:ResultadoConsulta>SinDatos</tikLRRC:ResultadoConsulta>
</tikLRRC:RespuestaConsultaFactuSistemaFacturacion>
</env:Body>
</env:Envelope>`

	resp, err := ParseQuery([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 10, resp.Month)
	assert.Equal(t, QueryWithoutData, resp.Result)
	assert.False(t, resp.HasMorePages)
	assert.Empty(t, resp.Items)
}

func TestParseQueryPagination(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body>
<tikLRRC:RespuestaConsultaFactuSistemaFacturacion
    xmlns:tikLRRC="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/RespuestaConsultaLR.xsd">
    <tikLRRC:PeriodoImputacion>
        <tikLRRC:Ejercicio>2025</tikLRRC:Ejercicio>
        <tikLRRC:Periodo>11</tikLRRC:Periodo>
    </tikLRRC:PeriodoImputacion>
    <tikLRRC:IndicadorPaginacion>S</tikLRRC:IndicadorPaginacion>
    <tikLRRC:ResultadoConsulta>ConDatos</tikLRRC:ResultadoConsulta>
    <tikLRRC:ClavePaginacion>NEXT_PAGE_KEY_123</tikLRRC:ClavePaginacion>
</tikLRRC:RespuestaConsultaFactuSistemaFacturacion>
</env:Body>
</env:Envelope>`

	resp, err := ParseQuery([]byte(xml))
	require.NoError(t, err)
	assert.True(t, resp.HasMorePages)
	assert.Equal(t, "NEXT_PAGE_KEY_123", resp.PaginationKey)
}

func TestParseQueryRecipientsAndBreakdown(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body>
<tikLRRC:RespuestaConsultaFactuSistemaFacturacion
    xmlns:tik="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/SuministroInformacion.xsd"
    xmlns:tikLRRC="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/RespuestaConsultaLR.xsd">
    <tikLRRC:PeriodoImputacion>
        <tikLRRC:Ejercicio>2025</tikLRRC:Ejercicio>
        <tikLRRC:Periodo>11</tikLRRC:Periodo>
    </tikLRRC:PeriodoImputacion>
    <tikLRRC:IndicadorPaginacion>N</tikLRRC:IndicadorPaginacion>
    <tikLRRC:ResultadoConsulta>ConDatos</tikLRRC:ResultadoConsulta>
    <tikLRRC:RegistroRespuestaConsultaFactuSistemaFacturacion>
        <tikLRRC:IDFactura>
            <tik:IDEmisorFactura>B12345678</tik:IDEmisorFactura>
            <tik:NumSerieFactura>FACT-001</tik:NumSerieFactura>
            <tik:FechaExpedicionFactura>25-11-2025</tik:FechaExpedicionFactura>
        </tikLRRC:IDFactura>
        <tikLRRC:DatosRegistroFacturacion>
            <tikLRRC:NombreRazonEmisor>Seller Company</tikLRRC:NombreRazonEmisor>
            <tikLRRC:TipoFactura>F1</tikLRRC:TipoFactura>
            <tikLRRC:ImporteTotal>1478.61</tikLRRC:ImporteTotal>
            <tikLRRC:CuotaTotal>256.62</tikLRRC:CuotaTotal>
            <tikLRRC:Destinatarios>
                <tikLRRC:IDDestinatario>
                    <tik:NombreRazon>Buyer Name</tik:NombreRazon>
                    <tik:NIF>12345678A</tik:NIF>
                </tikLRRC:IDDestinatario>
            </tikLRRC:Destinatarios>
            <tikLRRC:Desglose>
                <tik:DetalleDesglose>
                    <tik:Impuesto>01</tik:Impuesto>
                    <tik:ClaveRegimen>01</tik:ClaveRegimen>
                    <tik:CalificacionOperacion>S1</tik:CalificacionOperacion>
                    <tik:TipoImpositivo>21</tik:TipoImpositivo>
                    <tik:BaseImponibleOimporteNoSujeto>1221.99</tik:BaseImponibleOimporteNoSujeto>
                    <tik:CuotaRepercutida>256.62</tik:CuotaRepercutida>
                </tik:DetalleDesglose>
            </tikLRRC:Desglose>
            <tikLRRC:Encadenamiento>
                <tikLRRC:PrimerRegistro>S</tikLRRC:PrimerRegistro>
            </tikLRRC:Encadenamiento>
        </tikLRRC:DatosRegistroFacturacion>
        <tikLRRC:EstadoRegistro>
            <tikLRRC:EstadoRegistro>Correcto</tikLRRC:EstadoRegistro>
        </tikLRRC:EstadoRegistro>
    </tikLRRC:RegistroRespuestaConsultaFactuSistemaFacturacion>
</tikLRRC:RespuestaConsultaFactuSistemaFacturacion>
</env:Body>
</env:Envelope>`

	resp, err := ParseQuery([]byte(xml))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	item := resp.Items[0]

	require.Len(t, item.Recipients, 1)
	assert.Equal(t, "Buyer Name", item.Recipients[0].Name)
	assert.Equal(t, "12345678A", item.Recipients[0].NIF)

	require.Len(t, item.Breakdown, 1)
	assert.Equal(t, "01", item.Breakdown[0].Tax)
	assert.Equal(t, "01", item.Breakdown[0].Regime)
	assert.Equal(t, "S1", item.Breakdown[0].Operation)
	assert.Equal(t, "21", item.Breakdown[0].TaxRate)
	assert.Equal(t, "1221.99", item.Breakdown[0].BaseAmount)
	assert.Equal(t, "256.62", item.Breakdown[0].TaxAmount)

	assert.Equal(t, "1478.61", item.TotalAmount)
	assert.Equal(t, "256.62", item.TotalTaxAmount)
}

func TestParseQueryMissingRoot(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body></env:Body>
</env:Envelope>`

	_, err := ParseQuery([]byte(xml))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseQuerySupplyNamespacePeriod(t *testing.T) {
	// Some endpoints qualify Ejercicio and Periodo in the supply
	// namespace instead of the consultation one
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
<env:Body>
<tikLRRC:RespuestaConsultaFactuSistemaFacturacion
    xmlns:tik="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/SuministroInformacion.xsd"
    xmlns:tikLRRC="https://www2.agenciatributaria.gob.es/static_files/common/internet/dep/aplicaciones/es/aeat/tike/cont/ws/RespuestaConsultaLR.xsd">
    <tikLRRC:PeriodoImputacion>
        <tik:Ejercicio>2025</tik:Ejercicio>
        <tik:Periodo>11</tik:Periodo>
    </tikLRRC:PeriodoImputacion>
    <tikLRRC:IndicadorPaginacion>N</tikLRRC:IndicadorPaginacion>
    <tikLRRC:ResultadoConsulta>SinDatos</tikLRRC:ResultadoConsulta>
</tikLRRC:RespuestaConsultaFactuSistemaFacturacion>
</env:Body>
</env:Envelope>`

	resp, err := ParseQuery([]byte(xml))
	require.NoError(t, err)

	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 11, resp.Month)
	assert.Equal(t, QueryWithoutData, resp.Result)
}
