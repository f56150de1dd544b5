// utilitário pequeno para formatação rápida/consistente de valores numéricos em headers
// e para escrever as respostas JSON do registro.

package registry

import (
	"net/http"
	"strconv"

	"crpt-gateway/crpt/domain"
)

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string {
	// sem notação científica para valores comuns
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// retryAfterSeconds arredonda para cima; Retry-After nunca deve ser 0 ao bloquear.
func retryAfterSeconds(secs float64) string {
	n := int(secs)
	if float64(n) < secs {
		n++
	}
	if n < 1 {
		n = 1
	}
	return formatInt(n)
}

func writeReply(w http.ResponseWriter, codec domain.Codec, status int, resp domain.Response) {
	body, err := codec.Marshal(resp)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
