package erp

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Address endereço cadastral de uma pessoa no ERP.
type Address struct {
	AddressType  string `json:"addressType,omitempty"`
	PublicPlace  string `json:"publicPlace,omitempty"`
	Address      string `json:"address,omitempty"`
	Number       string `json:"addressNumber,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	CityName     string `json:"cityName,omitempty"`
	State        string `json:"stateAbbreviation,omitempty"`
	CEP          string `json:"cep,omitempty"`
	IsDefault    bool   `json:"isDefault,omitempty"`
}

// Phone telefone cadastral.
type Phone struct {
	TypeName  string `json:"typeName,omitempty"`
	Number    string `json:"number,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// Email e-mail cadastral.
type Email struct {
	TypeName  string `json:"typeName,omitempty"`
	Email     string `json:"email,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// PersonRecord dados cadastrais de uma pessoa (física ou jurídica) do ERP.
// CPF preenchido para PF, CNPJ para PJ.
type PersonRecord struct {
	Code           int64     `json:"code"`
	Name           string    `json:"name"`
	IsLegalEntity  bool      `json:"isLegalEntity"`
	CPF            string    `json:"cpf,omitempty"`
	CNPJ           string    `json:"cnpj,omitempty"`
	FantasyName    string    `json:"fantasyName,omitempty"`
	IsInactive     bool      `json:"isInactive"`
	IsCustomer     bool      `json:"isCustomer,omitempty"`
	IsSupplier     bool      `json:"isSupplier,omitempty"`
	CustomerStatus string    `json:"customerStatus,omitempty"`
	BirthDate      string    `json:"birthDate,omitempty"`
	InsertDate     string    `json:"insertDate,omitempty"`
	Addresses      []Address `json:"addresses,omitempty"`
	Phones         []Phone   `json:"phones,omitempty"`
	Emails         []Email   `json:"emails,omitempty"`
}

type personItem struct {
	Code           int64     `json:"code"`
	Name           string    `json:"name"`
	CPF            string    `json:"cpf"`
	CNPJ           string    `json:"cnpj"`
	FantasyName    string    `json:"fantasyName"`
	IsInactive     bool      `json:"isInactive"`
	IsCustomer     bool      `json:"isCustomer"`
	IsSupplier     bool      `json:"isSupplier"`
	CustomerStatus string    `json:"customerStatus"`
	BirthDate      string    `json:"birthDate"`
	InsertDate     string    `json:"insertDate"`
	Addresses      []Address `json:"addresses"`
	Phones         []Phone   `json:"phones"`
	Emails         []Email   `json:"emails"`
}

// DecodePersonRecord converte um registro bruto dos endpoints de pessoas.
// legalEntity distingue o endpoint de origem (PF vs PJ).
func DecodePersonRecord(raw json.RawMessage, legalEntity bool) (PersonRecord, error) {
	var it personItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return PersonRecord{}, fmt.Errorf("decodificar pessoa: %w", err)
	}
	if it.Code == 0 || it.Name == "" {
		return PersonRecord{}, fmt.Errorf("pessoa sem code ou name")
	}
	if legalEntity && it.CNPJ == "" {
		return PersonRecord{}, fmt.Errorf("pessoa jurídica %d sem cnpj", it.Code)
	}
	if !legalEntity && it.CPF == "" {
		return PersonRecord{}, fmt.Errorf("pessoa física %d sem cpf", it.Code)
	}
	return PersonRecord{
		Code:           it.Code,
		Name:           it.Name,
		IsLegalEntity:  legalEntity,
		CPF:            it.CPF,
		CNPJ:           it.CNPJ,
		FantasyName:    it.FantasyName,
		IsInactive:     it.IsInactive,
		IsCustomer:     it.IsCustomer,
		IsSupplier:     it.IsSupplier,
		CustomerStatus: it.CustomerStatus,
		BirthDate:      it.BirthDate,
		InsertDate:     it.InsertDate,
		Addresses:      it.Addresses,
		Phones:         it.Phones,
		Emails:         it.Emails,
	}, nil
}

// PersonStatistics indicadores comerciais de um cliente calculados pelo ERP.
type PersonStatistics struct {
	PersonCode           int64           `json:"personCode"`
	FirstPurchaseDate    string          `json:"firstPurchaseDate,omitempty"`
	LastPurchaseDate     string          `json:"lastPurchaseDate,omitempty"`
	TotalPurchases       int             `json:"totalPurchases"`
	TotalPurchasesValue  decimal.Decimal `json:"totalPurchasesValue"`
	AveragePurchaseValue decimal.Decimal `json:"averagePurchaseValue"`
	AverageDelay         int             `json:"averageDelay"`
	MaxPurchaseValue     decimal.Decimal `json:"maxPurchaseValue"`
}

type personStatsPayload struct {
	PersonCode           int64   `json:"personCode"`
	FirstPurchaseDate    string  `json:"firstPurchaseDate"`
	LastPurchaseDate     string  `json:"lastPurchaseDate"`
	PurchaseQuantity     int     `json:"purchaseQuantity"`
	TotalPurchaseValue   float64 `json:"totalPurchaseValue"`
	AveragePurchaseValue float64 `json:"averagePurchaseValue"`
	AverageDelayDays     int     `json:"averageDelayDays"`
	BiggestPurchaseValue float64 `json:"biggestPurchaseValue"`
}

// DecodePersonStatistics converte a resposta do endpoint de estatísticas.
func DecodePersonStatistics(raw json.RawMessage) (PersonStatistics, error) {
	var p personStatsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return PersonStatistics{}, fmt.Errorf("decodificar estatísticas: %w", err)
	}
	if p.PersonCode == 0 {
		return PersonStatistics{}, fmt.Errorf("estatísticas sem personCode")
	}
	return PersonStatistics{
		PersonCode:           p.PersonCode,
		FirstPurchaseDate:    p.FirstPurchaseDate,
		LastPurchaseDate:     p.LastPurchaseDate,
		TotalPurchases:       p.PurchaseQuantity,
		TotalPurchasesValue:  decimal.NewFromFloat(p.TotalPurchaseValue),
		AveragePurchaseValue: decimal.NewFromFloat(p.AveragePurchaseValue),
		AverageDelay:         p.AverageDelayDays,
		MaxPurchaseValue:     decimal.NewFromFloat(p.BiggestPurchaseValue),
	}, nil
}
