package application

import (
	"context"
	"time"

	"crpt-gateway/crpt/domain"
	"crpt-gateway/internal/logger"

	"github.com/cockroachdb/errors"
)

// SubmissionService executa um envio de documento sob o controle do gate.
//
// Ele não sabe nada sobre HTTP: o Transport entrega bytes e devolve bytes.
// Não há retry aqui; quem chama decide.
type SubmissionService struct {
	Admission Admission
	Codec     domain.Codec
	Transport domain.Transport
	Stats     domain.StatsStore
	Logger    *logger.Logger
}

// Submit envia o documento e devolve o identificador criado pelo registro.
//
// A permissão adquirida é devolvida exatamente uma vez em qualquer saída
// (sucesso, rejeição, erro de codificação ou de transporte).
func (s SubmissionService) Submit(ctx context.Context, doc *domain.Document, signature []byte) (id string, err error) {
	if doc == nil {
		return "", domain.Encoding(errors.New("nil document"), "encode document")
	}

	start := time.Now()
	docType := doc.DocType()
	defer func() { s.record(ctx, docType, start, err) }()

	release, err := s.Admission.Acquire(ctx)
	if err != nil {
		s.log().Warnw("admission aborted", "doc_type", docType, "error", err)
		return "", err
	}
	defer release()

	productDocument, err := s.Codec.EncodeDocument(doc)
	if err != nil {
		s.log().Errorw("encode document", "doc_type", docType, "error", err)
		return "", err
	}

	body := domain.NewRequestBody(
		domain.DocumentFormatManual,
		productDocument,
		domain.ProductGroupMilk,
		s.Codec.EncodeBase64(signature),
		docType,
	)
	payload, err := s.Codec.Marshal(body)
	if err != nil {
		s.log().Errorw("encode request body", "doc_type", docType, "error", err)
		return "", err
	}

	status, reply, err := s.Transport.Post(ctx, payload)
	if err != nil {
		err = domain.Transport(err, "post document")
		s.log().Errorw("submission failed", "doc_type", docType, "error", err)
		return "", err
	}

	var resp domain.Response
	if uerr := s.Codec.Unmarshal(reply, &resp); uerr != nil {
		err = domain.Transport(uerr, "malformed registry reply")
		s.log().Errorw("submission failed", "doc_type", docType, "status", status, "error", err)
		return "", err
	}

	if value, ok := resp.Accepted(); ok {
		s.log().Infow("document created", "doc_uuid", value, "doc_type", docType)
		return value, nil
	}

	err = &domain.RejectedError{Reason: resp.ErrorMessage, StatusCode: status}
	s.log().Warnw("document rejected", "doc_type", docType, "status", status, "reason", resp.ErrorMessage)
	return "", err
}

func (s SubmissionService) record(ctx context.Context, docType domain.DocumentType, start time.Time, err error) {
	if s.Stats == nil {
		return
	}
	// best-effort: estatística nunca altera o resultado do envio.
	if rerr := s.Stats.Record(context.WithoutCancel(ctx), domain.StatsEvent{
		DocType:  docType,
		Outcome:  domain.OutcomeOf(err),
		Duration: time.Since(start),
		At:       time.Now(),
	}); rerr != nil {
		s.log().Debugw("stats record failed", "error", rerr)
	}
}

func (s SubmissionService) log() *logger.Logger {
	if s.Logger == nil {
		return logger.NewNop()
	}
	return s.Logger
}
