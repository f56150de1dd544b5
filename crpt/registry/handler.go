package registry

import (
	"context"
	"io"
	"net/http"
	"time"

	"crpt-gateway/crpt/domain"
	"crpt-gateway/crpt/infra"
	"crpt-gateway/internal/logger"

	"github.com/google/uuid"
)

// DefaultPath é o caminho de criação de documentos do registro real.
const DefaultPath = "/api/v3/lk/documents/commissioning/contract/create"

const maxBodyBytes = 8 << 20

type HandlerOptions struct {
	Path   string
	Codec  domain.Codec
	NewID  func() string
	Logger *logger.Logger
	// Stats (opcional) recebe um evento por requisição tratada.
	Stats domain.StatsStore
}

type handler struct {
	codec domain.Codec
	newID func() string
	log   *logger.Logger
	stats domain.StatsStore
}

// NewHandler monta o registro simulado. Métodos diferentes de POST recebem 405.
func NewHandler(opts HandlerOptions) http.Handler {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Codec == nil {
		opts.Codec = infra.NewJSONCodec()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	h := &handler{codec: opts.Codec, newID: opts.NewID, log: opts.Logger, stats: opts.Stats}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+opts.Path, h.create)
	return mux
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	ev := domain.StatsEvent{Outcome: domain.OutcomeRejected, At: time.Now()}
	defer func() { h.record(r.Context(), ev) }()

	if BearerToken(r) == "" {
		h.reject(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.reject(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var body domain.RequestBody
	if err := h.codec.Unmarshal(raw, &body); err != nil {
		h.reject(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if reason := validateEnvelope(body); reason != "" {
		h.reject(w, http.StatusBadRequest, reason)
		return
	}

	ev.DocType = body.Type

	if _, err := h.codec.DecodeBase64(body.Signature); err != nil {
		h.reject(w, http.StatusBadRequest, "signature is not base64")
		return
	}

	var doc domain.Document
	if err := h.codec.DecodeDocument(body.ProductDocument, &doc); err != nil {
		h.reject(w, http.StatusBadRequest, "malformed product_document")
		return
	}
	if !validInn(doc.ParticipantInn()) {
		h.reject(w, http.StatusBadRequest, "invalid inn")
		return
	}
	if doc.DocType() != body.Type {
		h.reject(w, http.StatusBadRequest, "type does not match product_document")
		return
	}

	id := h.newID()
	ev.Outcome = domain.OutcomeAccepted
	h.log.Infow("document accepted", "doc_uuid", id, "doc_type", body.Type, "doc_id", doc.DocID())
	writeReply(w, h.codec, http.StatusOK, domain.AcceptedResponse(id))
}

func (h *handler) reject(w http.ResponseWriter, status int, reason string) {
	h.log.Debugw("document rejected", "status", status, "reason", reason)
	writeReply(w, h.codec, status, domain.RejectedResponse(reason))
}

func (h *handler) record(ctx context.Context, ev domain.StatsEvent) {
	if h.stats == nil {
		return
	}
	ev.Duration = time.Since(ev.At)
	if err := h.stats.Record(context.WithoutCancel(ctx), ev); err != nil {
		h.log.Debugw("stats record failed", "error", err)
	}
}

func validateEnvelope(body domain.RequestBody) string {
	switch {
	case !body.DocumentFormat.Valid():
		return "unknown document_format"
	case !body.ProductGroup.Valid():
		return "unknown product_group"
	case !body.Type.Valid():
		return "unknown type"
	case body.ProductDocument == "":
		return "product_document is required"
	case body.Signature == "":
		return "signature is required"
	}
	return ""
}

// validInn aceita INN de pessoa jurídica (10 dígitos) ou física (12 dígitos).
func validInn(inn string) bool {
	if len(inn) != 10 && len(inn) != 12 {
		return false
	}
	for _, c := range inn {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
