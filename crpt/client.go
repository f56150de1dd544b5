package crpt

import (
	"context"
	"net/http"
	"time"

	"crpt-gateway/crpt/application"
	"crpt-gateway/crpt/domain"
	"crpt-gateway/crpt/infra"
	"crpt-gateway/internal/logger"
)

// DefaultEndpoint é o endpoint de criação de documentos do registro.
const DefaultEndpoint = "https://ismp.crpt.ru/api/v3/lk/documents/commissioning/contract/create"

type Options struct {
	// Endpoint vazio usa DefaultEndpoint.
	Endpoint string
	Token    string

	// TimeUnit e RequestLimit formam a cota: RequestLimit envios por TimeUnit.
	TimeUnit     time.Duration
	RequestLimit int
	// AcquireTimeout > 0 limita a espera por uma permissão.
	AcquireTimeout time.Duration

	HTTPTimeout time.Duration
	HTTPClient  *http.Client

	Codec  domain.Codec
	Stats  domain.StatsStore
	Logger *logger.Logger
}

type Client struct {
	gate *infra.DripGate
	svc  application.SubmissionService
}

// NewClient valida a configuração, cria o gate (já gotejando) e monta o
// serviço de envio. Chame Close para parar o gotejamento.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Token == "" {
		return nil, domain.InvalidConfiguration("token is required")
	}
	if opts.TimeUnit == 0 {
		opts.TimeUnit = time.Second
	}
	if opts.Codec == nil {
		opts.Codec = infra.NewJSONCodec()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	gate, err := infra.NewDripGate(opts.TimeUnit, opts.RequestLimit)
	if err != nil {
		return nil, err
	}

	transport := infra.NewHTTPTransport(opts.Endpoint, opts.Token,
		infra.WithTimeout(opts.HTTPTimeout),
		infra.WithHTTPClient(opts.HTTPClient),
	)

	return &Client{
		gate: gate,
		svc: application.SubmissionService{
			Admission: application.Admission{
				Gate:           gate,
				AcquireTimeout: opts.AcquireTimeout,
			},
			Codec:     opts.Codec,
			Transport: transport,
			Stats:     opts.Stats,
			Logger:    opts.Logger.With("endpoint", opts.Endpoint),
		},
	}, nil
}

// CreateDocument envia o documento com a assinatura destacada (bytes crus) e
// devolve o UUID criado pelo registro.
//
// O campo signature do envelope é o base64 dos bytes crus da assinatura. Ela
// não é serializada como string JSON antes, então o conteúdo codificado não
// carrega aspas.
//
// Erros: domain.ErrOperationAborted, ErrTransport, ErrSubmissionRejected,
// ErrEncoding (classifique com os helpers domain.Is*).
func (c *Client) CreateDocument(ctx context.Context, doc *domain.Document, signature []byte) (string, error) {
	return c.svc.Submit(ctx, doc, signature)
}

// Available devolve quantas permissões estão livres agora.
func (c *Client) Available() int { return c.gate.Available() }

// Close para o gotejamento. Envios em andamento não são interrompidos.
func (c *Client) Close() { c.gate.Stop() }
