package erp

import (
	"errors"
	"fmt"
)

// ErrNotFound indica busca estruturalmente bem-sucedida que não retornou registros.
// A camada HTTP mapeia para 404.
var ErrNotFound = errors.New("recurso não encontrado no ERP")

// AuthError indica que o endpoint de token do ERP rejeitou as credenciais
// configuradas. Fatal para a requisição; não há nova tentativa.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("autenticação no ERP falhou: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamAuthError indica que a renovação do token após um 401 também falhou,
// ou que um 401 se repetiu na mesma página após renovar. Mapeia para 502.
type UpstreamAuthError struct {
	Err error
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("reautenticação no ERP falhou: %v", e.Err)
}

func (e *UpstreamAuthError) Unwrap() error { return e.Err }

// UpstreamError indica falha de comunicação com o ERP depois de esgotadas as
// tentativas. Status zero significa erro de rede (sem resposta HTTP).
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("ERP respondeu status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("erro de rede com o ERP: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
