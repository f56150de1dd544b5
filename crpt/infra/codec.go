package infra

import (
	"encoding/base64"

	"crpt-gateway/crpt/domain"

	jsoniter "github.com/json-iterator/go"
)

// JSONCodec implementa domain.Codec com uma instância explícita do json-iterator
// (nada de codec global) e base64 padrão com padding.
type JSONCodec struct {
	api jsoniter.API
	b64 *base64.Encoding
}

type CodecOption func(*JSONCodec)

// WithJSONAPI troca a configuração do json-iterator (ex: jsoniter.ConfigFastest).
func WithJSONAPI(api jsoniter.API) CodecOption {
	return func(c *JSONCodec) { c.api = api }
}

func NewJSONCodec(opts ...CodecOption) *JSONCodec {
	c := &JSONCodec{
		api: jsoniter.ConfigCompatibleWithStandardLibrary,
		b64: base64.StdEncoding,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Marshal serializa v em JSON; falhas saem marcadas como ErrEncoding.
func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := c.api.Marshal(v)
	if err != nil {
		return nil, domain.Encoding(err, "marshal json")
	}
	return data, nil
}

// Unmarshal decodifica JSON em v; falhas saem marcadas como ErrEncoding.
func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	if err := c.api.Unmarshal(data, v); err != nil {
		return domain.Encoding(err, "unmarshal json")
	}
	return nil
}

// EncodeBase64 codifica bytes crus em base64 padrão com padding.
func (c *JSONCodec) EncodeBase64(data []byte) string {
	return c.b64.EncodeToString(data)
}

// DecodeBase64 é o inverso de EncodeBase64.
func (c *JSONCodec) DecodeBase64(text string) ([]byte, error) {
	data, err := c.b64.DecodeString(text)
	if err != nil {
		return nil, domain.Encoding(err, "decode base64")
	}
	return data, nil
}

// EncodeDocument serializa v em JSON e codifica o resultado em base64.
func (c *JSONCodec) EncodeDocument(v any) (string, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return "", err
	}
	return c.EncodeBase64(data), nil
}

// DecodeDocument é o inverso de EncodeDocument.
func (c *JSONCodec) DecodeDocument(text string, v any) error {
	data, err := c.DecodeBase64(text)
	if err != nil {
		return err
	}
	return c.Unmarshal(data, v)
}
