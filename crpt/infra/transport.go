package infra

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"crpt-gateway/crpt/domain"
)

// HTTPTransport implementa domain.Transport: um POST por chamada para um
// endpoint fixo, com o token Bearer da configuração.
type HTTPTransport struct {
	client   *http.Client
	endpoint string
	token    string
}

type TransportOption func(*HTTPTransport)

// WithHTTPClient troca o *http.Client (ex: httptest, proxy, TLS próprio).
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout define o timeout total do cliente HTTP padrão.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.client = &http.Client{Timeout: d}
		}
	}
}

func NewHTTPTransport(endpoint, token string, opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
		token:    token,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HTTPTransport) Endpoint() string { return t.endpoint }

// Post implementa domain.Transport. O status não é interpretado aqui: quem
// decide sucesso/rejeição é o corpo da resposta.
func (t *HTTPTransport) Post(ctx context.Context, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, domain.Transport(err, "build request")
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, domain.Transport(err, "post document")
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, domain.Transport(err, "read reply")
	}
	return resp.StatusCode, reply, nil
}
