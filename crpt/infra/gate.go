package infra

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"crpt-gateway/crpt/domain"
)

// DripGate é um pool de permissões baseado em channel com capacidade `limit`.
//
// A cada unit/limit o gotejamento devolve uma permissão ao pool, se houver
// espaço, esteja ou não alguma permissão ainda em uso. Release apenas encerra
// o uso de quem adquiriu: a permissão volta a circular pelo gotejamento,
// nunca antes dele.
//
// Invariante: len(ready) <= limit e, em qualquer janela de k intervalos, no
// máximo limit+k aquisições.
type DripGate struct {
	ready    chan struct{}
	interval time.Duration
	inFlight atomic.Int64

	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewDripGate cria o gate cheio (limit permissões) e já inicia o gotejamento.
// Pare com Stop.
func NewDripGate(unit time.Duration, limit int) (*DripGate, error) {
	if limit <= 0 {
		return nil, domain.InvalidConfiguration("requestLimit must be > 0, got %d", limit)
	}
	if unit <= 0 {
		return nil, domain.InvalidConfiguration("time unit must be > 0, got %s", unit)
	}
	interval := unit / time.Duration(limit)
	if interval <= 0 {
		return nil, domain.InvalidConfiguration("time unit %s is too small for %d requests", unit, limit)
	}

	g := &DripGate{
		ready:    make(chan struct{}, limit),
		interval: interval,
		done:     make(chan struct{}),
	}
	for i := 0; i < limit; i++ {
		g.ready <- struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.startDrip(ctx)
	return g, nil
}

// Capacity devolve o tamanho máximo do pool (requestLimit).
func (g *DripGate) Capacity() int { return cap(g.ready) }

// Available devolve quantas permissões podem ser adquiridas sem esperar.
func (g *DripGate) Available() int { return len(g.ready) }

// InFlight devolve quantas permissões foram adquiridas e ainda não liberadas.
func (g *DripGate) InFlight() int { return int(g.inFlight.Load()) }

// Interval devolve o período do gotejamento (unit/limit).
func (g *DripGate) Interval() time.Duration { return g.interval }

// Acquire implementa domain.Gate. Sem timeout próprio: quem precisa de prazo
// passa um ctx com deadline.
func (g *DripGate) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return domain.Aborted(err)
	}
	select {
	case <-g.ready:
		g.inFlight.Add(1)
		return nil
	case <-ctx.Done():
		return domain.Aborted(ctx.Err())
	}
}

// Release implementa domain.Gate. Não coloca nada no pool; sem aquisição
// correspondente é um no-op.
func (g *DripGate) Release() {
	for {
		n := g.inFlight.Load()
		if n <= 0 || g.inFlight.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Stop encerra o gotejamento. Permissões ainda no pool podem ser adquiridas,
// mas nada mais é reposto.
func (g *DripGate) Stop() {
	g.stopOnce.Do(func() {
		g.cancel()
		<-g.done
	})
}

// drip devolve uma permissão ao pool, sem passar da capacidade.
func (g *DripGate) drip() {
	select {
	case g.ready <- struct{}{}:
	default:
	}
}

func (g *DripGate) startDrip(ctx context.Context) {
	t := time.NewTicker(g.interval)
	go func() {
		defer close(g.done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				g.drip()
			}
		}
	}()
}
