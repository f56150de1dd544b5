package domain

import (
	"encoding/json"
	"strings"
)

type ProductGroup string

const (
	ProductGroupClothes     ProductGroup = "clothes"
	ProductGroupShoes       ProductGroup = "shoes"
	ProductGroupTobacco     ProductGroup = "tobacco"
	ProductGroupPerfumery   ProductGroup = "perfumery"
	ProductGroupTires       ProductGroup = "tires"
	ProductGroupElectronics ProductGroup = "electronics"
	ProductGroupPharma      ProductGroup = "pharma"
	ProductGroupMilk        ProductGroup = "milk"
	ProductGroupBicycle     ProductGroup = "bicycle"
	ProductGroupWheelchairs ProductGroup = "wheelchairs"
)

func (g ProductGroup) Valid() bool {
	switch g {
	case ProductGroupClothes, ProductGroupShoes, ProductGroupTobacco, ProductGroupPerfumery,
		ProductGroupTires, ProductGroupElectronics, ProductGroupPharma, ProductGroupMilk,
		ProductGroupBicycle, ProductGroupWheelchairs:
		return true
	}
	return false
}

type DocumentFormat string

const (
	DocumentFormatManual DocumentFormat = "MANUAL"
	DocumentFormatXML    DocumentFormat = "XML"
	DocumentFormatCSV    DocumentFormat = "CSV"
)

func (f DocumentFormat) Valid() bool {
	return f == DocumentFormatManual || f == DocumentFormatXML || f == DocumentFormatCSV
}

type DocumentType string

const (
	DocumentTypeIntroduceGoods    DocumentType = "LP_INTRODUCE_GOODS"
	DocumentTypeIntroduceGoodsCSV DocumentType = "LP_INTRODUCE_GOODS_CSV"
	DocumentTypeIntroduceGoodsXML DocumentType = "LP_INTRODUCE_GOODS_XML"
)

func (t DocumentType) Valid() bool {
	return t == DocumentTypeIntroduceGoods || t == DocumentTypeIntroduceGoodsCSV || t == DocumentTypeIntroduceGoodsXML
}

// DocumentTypeFromHint deriva o tipo a partir de uma dica livre:
// contém "CSV" (sem distinguir maiúsculas) → _CSV; senão contém "XML" → _XML;
// senão o tipo base.
func DocumentTypeFromHint(hint string) DocumentType {
	h := strings.ToUpper(hint)
	switch {
	case strings.Contains(h, "CSV"):
		return DocumentTypeIntroduceGoodsCSV
	case strings.Contains(h, "XML"):
		return DocumentTypeIntroduceGoodsXML
	default:
		return DocumentTypeIntroduceGoods
	}
}

type ProductionType string

const (
	ProductionTypeOwn      ProductionType = "OWN_PRODUCTION"
	ProductionTypeContract ProductionType = "CONTRACT_PRODUCTION"
)

func (p ProductionType) Valid() bool {
	return p == ProductionTypeOwn || p == ProductionTypeContract
}

type CertificateType string

const (
	CertificateConformity CertificateType = "CONFORMITY_CERTIFICATE"
	DeclarationConformity CertificateType = "CONFORMITY_DECLARATION"
)

// Product é um item do documento. UituCode pode ser preenchido depois da
// construção (código do agregado atribuído pelo registro).
type Product struct {
	CertificateDocument       CertificateType `json:"certificate_document,omitempty"`
	CertificateDocumentDate   string          `json:"certificate_document_date,omitempty"`
	CertificateDocumentNumber string          `json:"certificate_document_number,omitempty"`
	OwnerInn                  string          `json:"owner_inn"`
	ProducerInn               string          `json:"producer_inn"`
	ProductionDate            string          `json:"production_date"`
	TnvedCode                 string          `json:"tnved_code"`
	UitCode                   string          `json:"uit_code,omitempty"`
	UituCode                  string          `json:"uitu_code,omitempty"`
}

type Description struct {
	ParticipantInn string `json:"participantInn"`
}

// DocumentParams são os dados fornecidos pelo chamador para construir um Document.
// TypeHint é livre; o DocType final é derivado dele (ver DocumentTypeFromHint).
type DocumentParams struct {
	Description    Description
	DocID          string
	DocStatus      string
	TypeHint       string
	ImportRequest  string
	OwnerInn       string
	ParticipantInn string
	ProducerInn    string
	ProductionDate string
	ProductionType ProductionType
	Products       []Product
	RegDate        string
	RegNumber      string
}

// Document é o documento de introdução em circulação.
//
// O tipo é derivado uma única vez na construção e não pode ser alterado.
// Apenas docStatus, regDate e regNumber mudam depois (atualizações do registro).
type Document struct {
	description    Description
	docID          string
	docStatus      string
	docType        DocumentType
	importRequest  string
	ownerInn       string
	participantInn string
	producerInn    string
	productionDate string
	productionType ProductionType
	products       []Product
	regDate        string
	regNumber      string
}

func NewDocument(p DocumentParams) *Document {
	products := make([]Product, len(p.Products))
	copy(products, p.Products)

	return &Document{
		description:    p.Description,
		docID:          p.DocID,
		docStatus:      p.DocStatus,
		docType:        DocumentTypeFromHint(p.TypeHint),
		importRequest:  p.ImportRequest,
		ownerInn:       p.OwnerInn,
		participantInn: p.ParticipantInn,
		producerInn:    p.ProducerInn,
		productionDate: p.ProductionDate,
		productionType: p.ProductionType,
		products:       products,
		regDate:        p.RegDate,
		regNumber:      p.RegNumber,
	}
}

func (d *Document) Description() Description { return d.description }
func (d *Document) DocID() string { return d.docID }
func (d *Document) DocType() DocumentType { return d.docType }
func (d *Document) ImportRequest() string { return d.importRequest }
func (d *Document) OwnerInn() string { return d.ownerInn }
func (d *Document) ParticipantInn() string { return d.participantInn }
func (d *Document) ProducerInn() string { return d.producerInn }
func (d *Document) ProductionDate() string { return d.productionDate }
func (d *Document) ProductionType() ProductionType { return d.productionType }

// Products devolve uma cópia; o documento é dono exclusivo da sua sequência.
func (d *Document) Products() []Product {
	out := make([]Product, len(d.products))
	copy(out, d.products)
	return out
}

// SetProductUituCode atribui o código de agregado do i-ésimo produto.
func (d *Document) SetProductUituCode(i int, code string) bool {
	if i < 0 || i >= len(d.products) {
		return false
	}
	d.products[i].UituCode = code
	return true
}

func (d *Document) DocStatus() string { return d.docStatus }
func (d *Document) SetDocStatus(status string) { d.docStatus = status }
func (d *Document) RegDate() string { return d.regDate }
func (d *Document) SetRegDate(date string) { d.regDate = date }
func (d *Document) RegNumber() string { return d.regNumber }
func (d *Document) SetRegNumber(number string) { d.regNumber = number }

// documentJSON é a forma de transporte (nomes de campo fixos pelo contrato).
type documentJSON struct {
	Description    Description    `json:"description"`
	DocID          string         `json:"doc_id"`
	DocStatus      string         `json:"doc_status"`
	DocType        DocumentType   `json:"doc_type"`
	ImportRequest  string         `json:"import_request,omitempty"`
	OwnerInn       string         `json:"owner_inn"`
	ParticipantInn string         `json:"participant_inn"`
	ProducerInn    string         `json:"producer_inn"`
	ProductionDate string         `json:"production_date"`
	ProductionType ProductionType `json:"production_type"`
	Products       []Product      `json:"products"`
	RegDate        string         `json:"reg_date"`
	RegNumber      string         `json:"reg_number,omitempty"`
}

func (d *Document) MarshalJSON() ([]byte, error) {
	products := d.products
	if products == nil {
		products = []Product{}
	}
	return json.Marshal(documentJSON{
		Description:    d.description,
		DocID:          d.docID,
		DocStatus:      d.docStatus,
		DocType:        d.docType,
		ImportRequest:  d.importRequest,
		OwnerInn:       d.ownerInn,
		ParticipantInn: d.participantInn,
		ProducerInn:    d.producerInn,
		ProductionDate: d.productionDate,
		ProductionType: d.productionType,
		Products:       products,
		RegDate:        d.regDate,
		RegNumber:      d.regNumber,
	})
}

// UnmarshalJSON reconstrói o documento passando doc_type pela mesma derivação
// da construção.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w documentJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = *NewDocument(DocumentParams{
		Description:    w.Description,
		DocID:          w.DocID,
		DocStatus:      w.DocStatus,
		TypeHint:       string(w.DocType),
		ImportRequest:  w.ImportRequest,
		OwnerInn:       w.OwnerInn,
		ParticipantInn: w.ParticipantInn,
		ProducerInn:    w.ProducerInn,
		ProductionDate: w.ProductionDate,
		ProductionType: w.ProductionType,
		Products:       w.Products,
		RegDate:        w.RegDate,
		RegNumber:      w.RegNumber,
	})
	return nil
}
