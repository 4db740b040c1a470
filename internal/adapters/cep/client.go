// Package cep looks up Brazilian postal codes on the public ViaCEP service.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clubdesk/internal/domain/brdoc"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br"

// DefaultTimeout bounds a lookup; address autofill is best-effort and must
// not hang the wizard.
const DefaultTimeout = 5 * time.Second

// ErrNotFound is returned for a well-formed CEP the service does not know.
var ErrNotFound = errors.New("cep not found")

// ErrInvalidCEP is returned before any request for a malformed code.
var ErrInvalidCEP = errors.New("cep must have 8 digits")

// Address is the subset of the ViaCEP response the wizard fills in.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// Client queries the CEP service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client for the given base URL; empty uses the public service.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Lookup resolves one postal code. Formatting characters in cep are ignored.
// PRE: none
// POST: On success every returned field comes verbatim from the service
func (c *Client) Lookup(ctx context.Context, cep string) (Address, error) {
	digits := brdoc.Digits(cep)
	if len(digits) != 8 {
		return Address{}, fmt.Errorf("%q: %w", cep, ErrInvalidCEP)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, err
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("cep lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return Address{}, fmt.Errorf("cep service: status=%d body=%s", resp.StatusCode, string(b))
	}

	// The service reports unknown codes as 200 with an error flag.
	var payload struct {
		Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Address{}, fmt.Errorf("decode cep response: %w", err)
	}
	if payload.Erro {
		return Address{}, fmt.Errorf("%s: %w", digits, ErrNotFound)
	}
	return payload.Address, nil
}
