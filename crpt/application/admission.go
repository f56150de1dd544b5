package application

import (
	"context"
	"sync"
	"time"

	"crpt-gateway/crpt/domain"
)

// Admission concentra a regra de aquisição/liberação de permissões do gate,
// sem saber nada sobre HTTP.
type Admission struct {
	Gate domain.Gate
	// AcquireTimeout <= 0 espera indefinidamente (até ctx cancelar).
	AcquireTimeout time.Duration
}

// Acquire tenta adquirir uma permissão.
// Retorna um release que pode ser chamado várias vezes, mas devolve a
// permissão exatamente uma vez. Em erro, nenhuma permissão foi adquirida.
func (a Admission) Acquire(ctx context.Context) (func(), error) {
	if a.Gate == nil {
		return func() {}, nil
	}

	acqCtx := ctx
	if a.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, a.AcquireTimeout)
		defer cancel()
	}
	if err := a.Gate.Acquire(acqCtx); err != nil {
		if domain.IsAborted(err) {
			return nil, err
		}
		return nil, domain.Aborted(err)
	}

	var once sync.Once
	return func() { once.Do(a.Gate.Release) }, nil
}
