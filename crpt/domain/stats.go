package domain

import (
	"context"
	"time"
)

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
	OutcomeAborted  Outcome = "aborted"
)

// OutcomeOf classifica o erro devolvido por um envio.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeAccepted
	case IsRejected(err):
		return OutcomeRejected
	case IsAborted(err):
		return OutcomeAborted
	default:
		return OutcomeFailed
	}
}

// StatsEvent representa o resultado de um envio.
type StatsEvent struct {
	DocType  DocumentType
	Outcome  Outcome
	Duration time.Duration

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de envio.
//
// Implementações podem armazenar em Redis, memória, etc.
// Quem registra trata erro como best-effort (não altera o resultado do envio).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
