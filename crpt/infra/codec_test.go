package infra

import (
	"encoding/base64"
	"testing"

	"crpt-gateway/crpt/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec_EncodeDocumentIsBase64OfJSON(t *testing.T) {
	codec := NewJSONCodec()
	doc := domain.NewDocument(domain.DocumentParams{
		DocID:          "doc-1",
		TypeHint:       "xml",
		ParticipantInn: "7700000000",
		ProductionType: domain.ProductionTypeContract,
	})

	text, err := codec.EncodeDocument(doc)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(text)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"doc_type":"LP_INTRODUCE_GOODS_XML"`)
	assert.Contains(t, string(raw), `"production_type":"CONTRACT_PRODUCTION"`)

	var back domain.Document
	require.NoError(t, codec.DecodeDocument(text, &back))
	assert.Equal(t, "doc-1", back.DocID())
	assert.Equal(t, domain.DocumentTypeIntroduceGoodsXML, back.DocType())
}

func TestJSONCodec_Base64(t *testing.T) {
	codec := NewJSONCodec()

	assert.Equal(t, "c2lnbmF0dXJl", codec.EncodeBase64([]byte("signature")))

	data, err := codec.DecodeBase64("c2lnbmF0dXJl")
	require.NoError(t, err)
	assert.Equal(t, []byte("signature"), data)

	_, err = codec.DecodeBase64("%%% not base64")
	assert.True(t, domain.IsEncoding(err))
}

func TestJSONCodec_EncodingErrors(t *testing.T) {
	codec := NewJSONCodec()

	_, err := codec.Marshal(make(chan int))
	assert.True(t, domain.IsEncoding(err))

	_, err = codec.EncodeDocument(func() {})
	assert.True(t, domain.IsEncoding(err))

	var resp domain.Response
	err = codec.Unmarshal([]byte("<html>bad gateway</html>"), &resp)
	assert.True(t, domain.IsEncoding(err))

	var doc domain.Document
	err = codec.DecodeDocument(base64.StdEncoding.EncodeToString([]byte("{")), &doc)
	assert.True(t, domain.IsEncoding(err))
}

func TestJSONCodec_RequestBodyWireNames(t *testing.T) {
	codec := NewJSONCodec()
	body := domain.NewRequestBody(domain.DocumentFormatManual, "ZG9j", domain.ProductGroupMilk, "c2ln", domain.DocumentTypeIntroduceGoods)

	raw, err := codec.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"document_format": "MANUAL",
		"product_document": "ZG9j",
		"product_group": "milk",
		"signature": "c2ln",
		"type": "LP_INTRODUCE_GOODS"
	}`, string(raw))
}
