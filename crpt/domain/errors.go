package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Taxonomia de erros do envio. Produtores embrulham a causa original e marcam
// com uma destas sentinelas (errors.Mark); quem chama classifica com errors.Is.
var (
	// ErrInvalidConfiguration: configuração inválida na construção (ex: requestLimit <= 0).
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrOperationAborted: o chamador cancelou enquanto esperava admissão.
	ErrOperationAborted = errors.New("operation aborted")
	// ErrTransport: falha de rede/timeout/resposta malformada na troca HTTPS.
	ErrTransport = errors.New("transport error")
	// ErrSubmissionRejected: o registro respondeu sem `value`.
	ErrSubmissionRejected = errors.New("submission rejected")
	// ErrEncoding: valor não serializável ou base64 inválido.
	ErrEncoding = errors.New("encoding error")
)

// RejectedError carrega o motivo devolvido pelo registro (error_message).
type RejectedError struct {
	Reason     string
	StatusCode int
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s (status %d)", ErrSubmissionRejected, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", ErrSubmissionRejected, e.Reason)
}

// Is faz RejectedError casar com ErrSubmissionRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrSubmissionRejected
}

// InvalidConfiguration cria um erro marcado com ErrInvalidConfiguration.
func InvalidConfiguration(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidConfiguration)
}

// Aborted embrulha a causa do cancelamento (ex: context.Canceled).
func Aborted(cause error) error {
	return errors.Mark(errors.Wrap(cause, "waiting for admission"), ErrOperationAborted)
}

// Transport embrulha uma falha de I/O da troca HTTPS. Uma causa marcada como
// ErrEncoding (ex: resposta que o codec não decodificou) perde essa marca: o
// resultado é só transporte.
func Transport(cause error, msg string) error {
	if errors.Is(cause, ErrTransport) {
		return cause
	}
	if errors.Is(cause, ErrEncoding) {
		cause = errors.UnwrapAll(cause)
	}
	return errors.Mark(errors.Wrap(cause, msg), ErrTransport)
}

// Encoding embrulha uma falha de serialização/base64.
func Encoding(cause error, msg string) error {
	return errors.Mark(errors.Wrap(cause, msg), ErrEncoding)
}

func IsInvalidConfiguration(err error) bool { return errors.Is(err, ErrInvalidConfiguration) }
func IsAborted(err error) bool { return errors.Is(err, ErrOperationAborted) }
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }
func IsRejected(err error) bool { return errors.Is(err, ErrSubmissionRejected) }
func IsEncoding(err error) bool { return errors.Is(err, ErrEncoding) }

// RejectionReason devolve o error_message do registro, se err for uma rejeição.
func RejectionReason(err error) (string, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
