package domain

import "context"

// Transport faz um único POST do corpo já serializado e devolve o status e o
// corpo completo da resposta. Erros de I/O voltam marcados com ErrTransport.
type Transport interface {
	Post(ctx context.Context, body []byte) (status int, reply []byte, err error)
}
