package erp

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ReceivableFilters filtros aceitos pela busca de documentos de contas a
// receber. Campos vazios não entram no payload enviado ao ERP.
type ReceivableFilters struct {
	CustomerCodeList    []int64  `json:"customerCodeList,omitempty"`
	CustomerCpfCnpjList []string `json:"customerCpfCnpjList,omitempty"`
	StartExpiredDate    string   `json:"startExpiredDate,omitempty"`
	EndExpiredDate      string   `json:"endExpiredDate,omitempty"`
	StartIssueDate      string   `json:"startIssueDate,omitempty"`
	EndIssueDate        string   `json:"endIssueDate,omitempty"`
	StatusList          []int    `json:"statusList,omitempty"`
	DocumentTypeList    []int    `json:"documentTypeList,omitempty"`
	HasOpenInvoices     *bool    `json:"hasOpenInvoices,omitempty"`
}

// ReceivableDocument um título (parcela) de contas a receber.
type ReceivableDocument struct {
	ReceivableCode  int64           `json:"receivableCode"`
	CustomerCode    int64           `json:"customerCode"`
	CustomerName    string          `json:"customerName,omitempty"`
	DocumentNumber  string          `json:"documentNumber,omitempty"`
	InstallmentCode int             `json:"installmentCode"`
	OurNumber       string          `json:"ourNumber,omitempty"`
	IssueDate       string          `json:"issueDate,omitempty"`
	ExpiredDate     string          `json:"expiredDate,omitempty"`
	PaymentDate     string          `json:"paymentDate,omitempty"`
	Value           decimal.Decimal `json:"value"`
	PaidValue       decimal.Decimal `json:"paidValue"`
	Status          int             `json:"status"`
	BillingType     int             `json:"billingType,omitempty"`
}

type receivableItem struct {
	ReceivableCode  int64   `json:"receivableCode"`
	CustomerCode    int64   `json:"customerCode"`
	CustomerName    string  `json:"customerName"`
	DocumentNumber  string  `json:"documentNumber"`
	InstallmentCode int     `json:"installmentCode"`
	OurNumber       string  `json:"ourNumber"`
	IssueDate       string  `json:"issueDate"`
	ExpiredDate     string  `json:"expiredDate"`
	PaymentDate     string  `json:"paymentDate"`
	Value           float64 `json:"value"`
	PaidValue       float64 `json:"paidValue"`
	Status          int     `json:"status"`
	BillingType     int     `json:"billingType"`
}

// DecodeReceivableDocument converte um registro bruto da busca de documentos.
func DecodeReceivableDocument(raw json.RawMessage) (ReceivableDocument, error) {
	var it receivableItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return ReceivableDocument{}, fmt.Errorf("decodificar título: %w", err)
	}
	if it.ReceivableCode == 0 {
		return ReceivableDocument{}, fmt.Errorf("título sem receivableCode")
	}
	return ReceivableDocument{
		ReceivableCode:  it.ReceivableCode,
		CustomerCode:    it.CustomerCode,
		CustomerName:    it.CustomerName,
		DocumentNumber:  it.DocumentNumber,
		InstallmentCode: it.InstallmentCode,
		OurNumber:       it.OurNumber,
		IssueDate:       it.IssueDate,
		ExpiredDate:     it.ExpiredDate,
		PaymentDate:     it.PaymentDate,
		Value:           decimal.NewFromFloat(it.Value),
		PaidValue:       decimal.NewFromFloat(it.PaidValue),
		Status:          it.Status,
		BillingType:     it.BillingType,
	}, nil
}

// BankSlipRequest identifica as parcelas cujo boleto deve ser emitido.
type BankSlipRequest struct {
	BranchCode         int     `json:"branchCode"`
	CustomerCode       int64   `json:"customerCode"`
	ReceivableCodeList []int64 `json:"receivableCodeList"`
}
