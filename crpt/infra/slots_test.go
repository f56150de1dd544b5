package infra

import (
	"context"
	"testing"
	"time"

	"crpt-gateway/crpt/domain"
)

func TestSlotPool_RejectsNonPositiveSize(t *testing.T) {
	if _, err := NewSlotPool(0); !domain.IsInvalidConfiguration(err) {
		t.Fatalf("expected invalid configuration, got %v", err)
	}
}

func TestSlotPool_BlocksWhenFullAndFreesOnRelease(t *testing.T) {
	p, err := NewSlotPool(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Acquire(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Acquire(ctx); !domain.IsAborted(err) {
		t.Fatalf("expected aborted while full, got %v", err)
	}

	p.Release()
	if p.InUse() != 0 {
		t.Fatalf("expected slot to be free, in use=%d", p.InUse())
	}
	if err := p.Acquire(context.Background()); err != nil {
		t.Fatalf("expected slot after release: %v", err)
	}
}

func TestSlotPool_ExtraReleaseIsIgnored(t *testing.T) {
	p, err := NewSlotPool(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Release()
	p.Release()
	if p.InUse() != 0 {
		t.Fatalf("expected no slots in use, got %d", p.InUse())
	}
}
