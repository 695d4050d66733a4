package dto

// BankSlipIssueRequest parcelas cujo boleto deve ser emitido. A filial vem
// da configuração do servidor, nunca do chamador.
type BankSlipIssueRequest struct {
	CustomerCode       int64   `json:"customerCode"`
	ReceivableCodeList []int64 `json:"receivableCodeList"`
}
