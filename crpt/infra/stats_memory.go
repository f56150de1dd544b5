package infra

import (
	"context"
	"sync"

	"crpt-gateway/crpt/domain"
)

type Counters struct {
	Accepted int64
	Rejected int64
	Failed   int64
	Aborted  int64
}

func (c *Counters) add(o domain.Outcome) {
	switch o {
	case domain.OutcomeAccepted:
		c.Accepted++
	case domain.OutcomeRejected:
		c.Rejected++
	case domain.OutcomeAborted:
		c.Aborted++
	default:
		c.Failed++
	}
}

func (c Counters) Total() int64 { return c.Accepted + c.Rejected + c.Failed + c.Aborted }

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu        sync.Mutex
	total     Counters
	byDocType map[domain.DocumentType]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		byDocType: make(map[domain.DocumentType]Counters),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Outcome)
	c := s.byDocType[ev.DocType]
	c.add(ev.Outcome)
	s.byDocType[ev.DocType] = c
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByDocType() map[domain.DocumentType]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.DocumentType]Counters, len(s.byDocType))
	for k, v := range s.byDocType {
		out[k] = v
	}
	return out
}
