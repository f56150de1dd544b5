package infra

import (
	"context"

	"crpt-gateway/crpt/domain"
)

// SlotPool limita requisições simultâneas. Diferente do DripGate, a vaga volta
// imediatamente no Release. Implementa domain.Gate.
type SlotPool struct {
	sem chan struct{}
}

func NewSlotPool(max int) (*SlotPool, error) {
	if max <= 0 {
		return nil, domain.InvalidConfiguration("slot pool size must be > 0, got %d", max)
	}
	return &SlotPool{sem: make(chan struct{}, max)}, nil
}

func (p *SlotPool) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return domain.Aborted(err)
	}
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return domain.Aborted(ctx.Err())
	}
}

// Release sem Acquire correspondente é ignorado.
func (p *SlotPool) Release() {
	select {
	case <-p.sem:
	default:
	}
}

func (p *SlotPool) InUse() int { return len(p.sem) }
