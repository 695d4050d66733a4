package entity

import "time"

// Observation uma anotação de equipe sobre uma referência de produto
// (pendência de cadastro, divergência de saldo). Fica aberta até alguém
// marcar como resolvida.
type Observation struct {
	ID            int64
	ReferenceCode string
	Text          string
	CreatedBy     string // username de quem anotou
	CreatedAt     time.Time
	Resolved      bool
	ResolvedBy    string // username de quem resolveu; vazio se aberta
	ResolvedAt    *time.Time
}
