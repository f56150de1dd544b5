package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_DerivesTypeFromHint(t *testing.T) {
	tests := []struct {
		hint string
		want DocumentType
	}{
		{hint: "csv", want: DocumentTypeIntroduceGoodsCSV},
		{hint: "XML_TYPE", want: DocumentTypeIntroduceGoodsXML},
		{hint: "whatever", want: DocumentTypeIntroduceGoods},
		{hint: "", want: DocumentTypeIntroduceGoods},
		{hint: "xml-or-csv", want: DocumentTypeIntroduceGoodsCSV},
		{hint: "LP_INTRODUCE_GOODS_XML", want: DocumentTypeIntroduceGoodsXML},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			doc := NewDocument(DocumentParams{TypeHint: tt.hint})
			assert.Equal(t, tt.want, doc.DocType())
		})
	}
}

func TestNewDocument_NilProductsBecomesEmpty(t *testing.T) {
	doc := NewDocument(DocumentParams{})
	require.NotNil(t, doc.Products())
	assert.Empty(t, doc.Products())

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"products":[]`)
}

func TestNewDocument_OwnsItsProducts(t *testing.T) {
	products := []Product{{TnvedCode: "0401"}}
	doc := NewDocument(DocumentParams{Products: products})

	products[0].TnvedCode = "changed"
	assert.Equal(t, "0401", doc.Products()[0].TnvedCode)

	got := doc.Products()
	got[0].TnvedCode = "changed"
	assert.Equal(t, "0401", doc.Products()[0].TnvedCode)
}

func TestDocument_MutableRegistryFields(t *testing.T) {
	doc := NewDocument(DocumentParams{
		DocStatus: "DRAFT",
		Products:  []Product{{TnvedCode: "0401"}},
	})

	doc.SetDocStatus("CHECKED_OK")
	doc.SetRegDate("2024-03-01")
	doc.SetRegNumber("R-1")
	assert.True(t, doc.SetProductUituCode(0, "uitu-1"))
	assert.False(t, doc.SetProductUituCode(1, "uitu-2"))

	assert.Equal(t, "CHECKED_OK", doc.DocStatus())
	assert.Equal(t, "2024-03-01", doc.RegDate())
	assert.Equal(t, "R-1", doc.RegNumber())
	assert.Equal(t, "uitu-1", doc.Products()[0].UituCode)
}

func TestDocument_JSONUsesWireFieldNames(t *testing.T) {
	doc := NewDocument(DocumentParams{
		Description:    Description{ParticipantInn: "7700000000"},
		DocID:          "doc-1",
		DocStatus:      "DRAFT",
		TypeHint:       "csv",
		OwnerInn:       "7700000001",
		ParticipantInn: "7700000000",
		ProducerInn:    "7700000002",
		ProductionDate: "2024-01-15",
		ProductionType: ProductionTypeOwn,
		Products: []Product{{
			CertificateDocument: CertificateConformity,
			OwnerInn:            "7700000001",
			ProducerInn:         "7700000002",
			ProductionDate:      "2024-01-15",
			TnvedCode:           "0401",
			UitCode:             "uit-1",
		}},
		RegDate: "2024-01-16",
	})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, k := range []string{
		"description", "doc_id", "doc_status", "doc_type", "owner_inn", "participant_inn",
		"producer_inn", "production_date", "production_type", "products", "reg_date",
	} {
		assert.Contains(t, fields, k)
	}
	assert.Equal(t, "LP_INTRODUCE_GOODS_CSV", fields["doc_type"])
	assert.Equal(t, map[string]any{"participantInn": "7700000000"}, fields["description"])

	var back Document
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, doc.DocType(), back.DocType())
	assert.Equal(t, doc.Products(), back.Products())
	assert.Equal(t, doc.ParticipantInn(), back.ParticipantInn())
}

func TestDocument_UnmarshalNullProducts(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"doc_type":"xml","products":null}`), &doc))
	assert.Equal(t, DocumentTypeIntroduceGoodsXML, doc.DocType())
	assert.NotNil(t, doc.Products())
}

func TestRequestBody_StructuralEquality(t *testing.T) {
	a := NewRequestBody(DocumentFormatManual, "ZG9j", ProductGroupMilk, "c2ln", DocumentTypeIntroduceGoods)
	b := NewRequestBody(DocumentFormatManual, "ZG9j", ProductGroupMilk, "c2ln", DocumentTypeIntroduceGoods)
	c := NewRequestBody(DocumentFormatManual, "ZG9j", ProductGroupShoes, "c2ln", DocumentTypeIntroduceGoods)

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestResponse_Accepted(t *testing.T) {
	var ok Response
	require.NoError(t, json.Unmarshal([]byte(`{"value":"abc-123"}`), &ok))
	id, accepted := ok.Accepted()
	assert.True(t, accepted)
	assert.Equal(t, "abc-123", id)

	var rej Response
	require.NoError(t, json.Unmarshal([]byte(`{"error_message":"invalid inn"}`), &rej))
	_, accepted = rej.Accepted()
	assert.False(t, accepted)
	assert.Equal(t, "invalid inn", rej.ErrorMessage)
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, ProductGroupMilk.Valid())
	assert.False(t, ProductGroup("bread").Valid())
	assert.True(t, DocumentFormatCSV.Valid())
	assert.False(t, DocumentFormat("PDF").Valid())
	assert.True(t, DocumentTypeIntroduceGoodsXML.Valid())
	assert.False(t, DocumentType("LP_OTHER").Valid())
	assert.True(t, ProductionTypeContract.Valid())
	assert.False(t, ProductionType("IMPORT").Valid())
}
