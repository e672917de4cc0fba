package aeat

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/facturaIA/verifactu-go/query"
	"github.com/facturaIA/verifactu-go/records"
	"github.com/facturaIA/verifactu-go/responses"
)

// Service endpoints. Production and pre-production share the path.
const (
	productionBaseURL    = "https://www1.agenciatributaria.gob.es"
	preProductionBaseURL = "https://prewww1.aeat.es"
	servicePath          = "/wlpl/TIKE-CONT/ws/SistemaFacturacion/VerifactuSOAP"
)

// Default request deadlines, applied when the caller's context carries
// none. Consultations are slower than submissions on the AEAT side.
const (
	defaultSubmitTimeout = 30 * time.Second
	defaultQueryTimeout  = 60 * time.Second
)

// Doer is the HTTP client dependency, satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client submits invoicing records to the AEAT VERI*FACTU web service
// and runs period consultations. A client is safe for use by one caller
// at a time; create one client per concurrent actor.
type Client struct {
	system         ComputerSystem
	taxpayer       records.FiscalIdentifier
	representative *records.FiscalIdentifier

	httpClient Doer
	tlsClient  *http.Client
	tlsCert    *tls.Certificate
	tempPEM    string

	baseURL    string
	production bool
	debug      bool
}

// NewClient builds a client for the given invoicing system and taxpayer.
// The client targets production until SetProduction(false).
func NewClient(system ComputerSystem, taxpayer records.FiscalIdentifier) (*Client, error) {
	if err := system.Validate(); err != nil {
		return nil, fmt.Errorf("invalid computer system: %w", err)
	}
	if err := taxpayer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid taxpayer: %w", err)
	}
	return &Client{
		system:     system,
		taxpayer:   taxpayer,
		production: true,
	}, nil
}

// SetRepresentative sets the party presenting the records on behalf of
// the taxpayer. Requires the represented entity to have filed the
// GENERALLEY58 authorization at the AEAT.
func (c *Client) SetRepresentative(representative *records.FiscalIdentifier) *Client {
	c.representative = representative
	return c
}

// SetProduction selects the production endpoint (true) or the
// pre-production test endpoint (false)
func (c *Client) SetProduction(production bool) *Client {
	c.production = production
	return c
}

// SetDebug enables logging of request and response XML. The credential
// itself is never logged.
func (c *Client) SetDebug(debug bool) *Client {
	c.debug = debug
	return c
}

// SetHTTPClient injects a custom HTTP client. When set, the caller owns
// the transport configuration, including the client certificate.
func (c *Client) SetHTTPClient(httpClient Doer) *Client {
	c.httpClient = httpClient
	return c
}

// SetCertificate loads the mTLS credential used to authenticate against
// the AEAT. Accepts a PEM file (plain or password-protected key) or a
// PKCS#12 bundle (.pfx/.p12, password required); PKCS#12 bundles are
// converted to a temporary PEM removed by Close.
func (c *Client) SetCertificate(path, password string) error {
	cert, tempPEM, err := loadCredential(path, password)
	if err != nil {
		return err
	}
	c.removeTempPEM()
	c.tlsCert = &cert
	c.tempPEM = tempPEM
	c.tlsClient = nil
	return nil
}

// Close releases resources held by the client, removing the temporary
// PEM file staged for a PKCS#12 credential
func (c *Client) Close() error {
	c.removeTempPEM()
	return nil
}

func (c *Client) removeTempPEM() {
	if c.tempPEM == "" {
		return
	}
	os.Remove(c.tempPEM)
	c.tempPEM = ""
}

// Encode serializes a batch into the submission envelope without
// sending it, for audit trails or offline inspection
func (c *Client) Encode(batch []records.Record, incident bool) ([]byte, error) {
	return c.buildSubmission(batch, incident)
}

// Submit sends a batch of sealed records to the AEAT. The incident flag
// marks a voluntary remission after a system incident
// (RemisionVoluntaria/Incidencia). On transport failure the submission
// outcome is unknown; reconcile with Query.
func (c *Client) Submit(ctx context.Context, batch []records.Record, incident bool) (*responses.Response, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("batch cannot be empty")
	}
	for i, record := range batch {
		if record.Fields().Hash == "" {
			return nil, fmt.Errorf("record %d is not sealed, call Seal before submitting", i)
		}
	}

	payload, err := c.buildSubmission(batch, incident)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	body, err := c.post(ctx, payload, defaultSubmitTimeout)
	if err != nil {
		return nil, err
	}
	return responses.Parse(body)
}

// Query runs a consultation of the records registered for a period
func (c *Client) Query(ctx context.Context, filter *query.Filter) (*responses.QueryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	payload, err := c.buildQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	body, err := c.post(ctx, payload, defaultQueryTimeout)
	if err != nil {
		return nil, err
	}
	return responses.ParseQuery(body)
}

// post sends a SOAP payload to the service endpoint and reads the
// response body
func (c *Client) post(ctx context.Context, payload []byte, defaultTimeout time.Duration) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	if c.debug {
		log.Printf("aeat request: %s", payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("User-Agent", fmt.Sprintf("Mozilla/5.0 (compatible; %s/%s)", c.system.Name, c.system.Version))

	resp, err := c.doer().Do(req)
	if err != nil {
		return nil, &TransportError{Message: "failed to send request to AEAT", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "failed to read AEAT response", Err: err}
	}
	if c.debug {
		log.Printf("aeat response (%d): %s", resp.StatusCode, body)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Message: fmt.Sprintf("AEAT returned HTTP %d", resp.StatusCode),
		}
	}
	return body, nil
}

// endpoint returns the service URL for the selected environment
func (c *Client) endpoint() string {
	if c.baseURL != "" {
		return c.baseURL + servicePath
	}
	if c.production {
		return productionBaseURL + servicePath
	}
	return preProductionBaseURL + servicePath
}

// doer returns the injected HTTP client, or one configured with the
// loaded credential. The built client is rebuilt after SetCertificate
// so a credential change reaches the transport.
func (c *Client) doer() Doer {
	if c.httpClient != nil {
		return c.httpClient
	}
	if c.tlsClient == nil {
		transport := &http.Transport{}
		if c.tlsCert != nil {
			transport.TLSClientConfig = &tls.Config{
				Certificates: []tls.Certificate{*c.tlsCert},
			}
		}
		c.tlsClient = &http.Client{Transport: transport}
	}
	return c.tlsClient
}
