package domain

// Codec faz as transformações puras do envio: valor estruturado → JSON e
// bytes ↔ base64. Nunca faz I/O e nunca bloqueia.
// Falhas são marcadas com ErrEncoding.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	EncodeBase64(data []byte) string
	DecodeBase64(text string) ([]byte, error)

	// EncodeDocument serializa v para JSON e devolve o base64 dos bytes.
	EncodeDocument(v any) (string, error)
	// DecodeDocument é o inverso de EncodeDocument.
	DecodeDocument(text string, v any) error
}
