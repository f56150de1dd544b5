package domain

// RequestBody é o envelope enviado ao registro. Imutável depois de construído;
// sendo um valor com campos comparáveis, == já é igualdade estrutural.
type RequestBody struct {
	DocumentFormat  DocumentFormat `json:"document_format"`
	ProductDocument string         `json:"product_document"`
	ProductGroup    ProductGroup   `json:"product_group"`
	Signature       string         `json:"signature"`
	Type            DocumentType   `json:"type"`
}

func NewRequestBody(format DocumentFormat, productDocument string, group ProductGroup, signature string, docType DocumentType) RequestBody {
	return RequestBody{
		DocumentFormat:  format,
		ProductDocument: productDocument,
		ProductGroup:    group,
		Signature:       signature,
		Type:            docType,
	}
}

// Response é a resposta do registro: `value` presente significa sucesso,
// ausente significa falha com o motivo em `error_message`.
type Response struct {
	Value        *string `json:"value,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

func AcceptedResponse(id string) Response { return Response{Value: &id} }

func RejectedResponse(reason string) Response { return Response{ErrorMessage: reason} }

// Accepted devolve o identificador do documento criado, se houver.
func (r Response) Accepted() (string, bool) {
	if r.Value == nil {
		return "", false
	}
	return *r.Value, true
}
