package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// oracleBasePath is the route prefix of the signing oracle REST API
const oracleBasePath = "/api/v1/trsa/oracle"

type publicKeyPayload struct {
	N string `json:"n"`
	E string `json:"e"`
}

type signPayload struct {
	Message   string `json:"message"`
	Signature string `json:"signature,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// httpOracleConnector implements cryptoalg.SigningOracle against a remote oracle REST API
type httpOracleConnector struct {
	client  *http.Client
	baseURL string
	logger  logger.Logger
}

// NewHTTPOracleConnector creates a new httpOracleConnector instance
func NewHTTPOracleConnector(settings *config.OracleConnectorSettings, logger logger.Logger) (cryptoalg.SigningOracle, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid oracle connector settings: %w", err)
	}

	if _, err := url.Parse(settings.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid oracle base url: %w", err)
	}

	return &httpOracleConnector{
		client:  &http.Client{Timeout: settings.Timeout},
		baseURL: strings.TrimRight(settings.BaseURL, "/") + oracleBasePath,
		logger:  logger,
	}, nil
}

// PublicKey fetches the public key of the remote oracle
func (c *httpOracleConnector) PublicKey(ctx context.Context) (*keys.PublicKey, error) {
	var payload publicKeyPayload
	if err := c.do(ctx, http.MethodGet, "/public-key", nil, &payload); err != nil {
		return nil, err
	}

	n, ok := new(big.Int).SetString(payload.N, 10)
	if !ok {
		return nil, fmt.Errorf("oracle returned malformed modulus %q", payload.N)
	}
	e, ok := new(big.Int).SetString(payload.E, 10)
	if !ok {
		return nil, fmt.Errorf("oracle returned malformed exponent %q", payload.E)
	}

	pub := &keys.PublicKey{N: n, E: e}
	if err := pub.Validate(); err != nil {
		return nil, fmt.Errorf("oracle returned invalid public key: %w", err)
	}

	c.logger.Debug("Fetched oracle public key of ", n.BitLen(), " bits")
	return pub, nil
}

// Sign asks the remote oracle for m^d mod n. A 403 answer is reported as forgery.ErrOracleRefused.
func (c *httpOracleConnector) Sign(ctx context.Context, m *big.Int) (*big.Int, error) {
	if m == nil {
		return nil, keys.DomainViolation("message is required")
	}

	var payload signPayload
	if err := c.do(ctx, http.MethodPost, "/sign", signPayload{Message: m.String()}, &payload); err != nil {
		return nil, err
	}

	s, ok := new(big.Int).SetString(payload.Signature, 10)
	if !ok {
		return nil, fmt.Errorf("oracle returned malformed signature %q", payload.Signature)
	}
	return s, nil
}

func (c *httpOracleConnector) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode oracle request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create oracle request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("oracle request %s %s failed: %w", method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("Failed to close oracle response body: ", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		var failure errorPayload
		_ = json.NewDecoder(resp.Body).Decode(&failure)

		switch resp.StatusCode {
		case http.StatusForbidden:
			return forgery.ErrOracleRefused
		case http.StatusBadRequest:
			return keys.DomainViolation("oracle rejected request: %s", failure.Message)
		default:
			return fmt.Errorf("oracle answered %d: %s", resp.StatusCode, failure.Message)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode oracle response: %w", err)
	}
	return nil
}
