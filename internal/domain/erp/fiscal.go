package erp

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceFilters filtros da busca de notas fiscais.
type InvoiceFilters struct {
	StartIssueDate      string   `json:"startIssueDate,omitempty"`
	EndIssueDate        string   `json:"endIssueDate,omitempty"`
	CustomerCodeList    []int64  `json:"personCodeList,omitempty"`
	CustomerCpfCnpjList []string `json:"personCpfCnpjList,omitempty"`
	InvoiceNumberList   []int64  `json:"invoiceCodeList,omitempty"`
	StatusList          []string `json:"eletronicInvoiceStatusList,omitempty"`
}

// InvoiceRecord uma nota fiscal eletrônica emitida pela empresa.
type InvoiceRecord struct {
	AccessKey      string          `json:"accessKey"`
	InvoiceNumber  int64           `json:"invoiceNumber"`
	InvoiceSerial  string          `json:"invoiceSerial,omitempty"`
	IssueDate      string          `json:"issueDate,omitempty"`
	CustomerCode   int64           `json:"customerCode,omitempty"`
	CustomerName   string          `json:"customerName,omitempty"`
	OperationType  string          `json:"operationType,omitempty"`
	Status         string          `json:"status,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalValue     decimal.Decimal `json:"totalValue"`
}

type invoiceItem struct {
	AccessKey     string  `json:"accessKey"`
	InvoiceCode   int64   `json:"invoiceCode"`
	InvoiceSerial string  `json:"serialCode"`
	IssueDate     string  `json:"issueDate"`
	PersonCode    int64   `json:"personCode"`
	PersonName    string  `json:"personName"`
	OperationType string  `json:"operationType"`
	Status        string  `json:"eletronicInvoiceStatus"`
	Quantity      float64 `json:"quantity"`
	TotalValue    float64 `json:"totalValue"`
}

// DecodeInvoiceRecord converte um registro bruto da busca de notas fiscais.
func DecodeInvoiceRecord(raw json.RawMessage) (InvoiceRecord, error) {
	var it invoiceItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return InvoiceRecord{}, fmt.Errorf("decodificar nota fiscal: %w", err)
	}
	if it.AccessKey == "" && it.InvoiceCode == 0 {
		return InvoiceRecord{}, fmt.Errorf("nota fiscal sem accessKey e sem invoiceCode")
	}
	return InvoiceRecord{
		AccessKey:     it.AccessKey,
		InvoiceNumber: it.InvoiceCode,
		InvoiceSerial: it.InvoiceSerial,
		IssueDate:     it.IssueDate,
		CustomerCode:  it.PersonCode,
		CustomerName:  it.PersonName,
		OperationType: it.OperationType,
		Status:        it.Status,
		Quantity:      decimal.NewFromFloat(it.Quantity),
		TotalValue:    decimal.NewFromFloat(it.TotalValue),
	}, nil
}

// InvoiceXML conteúdo XML de uma NF-e, tal como armazenado pelo ERP.
type InvoiceXML struct {
	AccessKey string `json:"accessKey"`
	Content   string `json:"content"` // documento NF-e completo (UTF-8)
}

// InvoiceXMLSummary campos de interesse extraídos do XML de uma NF-e, para
// conferência sem abrir o documento completo.
type InvoiceXMLSummary struct {
	AccessKey     string          `json:"accessKey"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Serial        string          `json:"serial"`
	IssueDate     string          `json:"issueDate"`
	EmitterName   string          `json:"emitterName"`
	EmitterCNPJ   string          `json:"emitterCnpj"`
	RecipientName string          `json:"recipientName"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	ItemCount     int             `json:"itemCount"`
}
