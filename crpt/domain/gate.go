package domain

import "context"

// Gate limita quantos envios são admitidos por unidade de tempo.
//
// A semântica é: Acquire bloqueia até existir uma permissão ou até o ctx
// encerrar (sem consumir nada nesse caso). Release devolve a permissão
// adquirida; nunca leva o pool acima da capacidade configurada. Quando ela
// volta a circular depende da implementação.
type Gate interface {
	Acquire(ctx context.Context) error
	Release()
}
