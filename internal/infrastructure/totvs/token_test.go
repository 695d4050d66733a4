package totvs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/pkg/config"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func testERPConfig(baseURL string) config.ERPConfig {
	return config.ERPConfig{
		BaseURL:           baseURL,
		CompanyCode:       1,
		ClientID:          "cid",
		ClientSecret:      "secret",
		Username:          "user",
		Password:          "pass",
		GrantType:         "password",
		TokenEndpoint:     "/authorization/v2/token",
		BalancesEndpoint:  "/product/v2/balances/search",
		PageSize:          100,
		FiscalPageSize:    50,
		MaxRetries:        3,
		RetryDelay:        time.Millisecond,
		RequestTimeout:    5 * time.Second,
		TokenTimeout:      5 * time.Second,
		TokenSafetyMargin: 60 * time.Second,
	}
}

// Cache vazio sob N chamadas concorrentes dispara exatamente uma renovação;
// todas recebem o mesmo token.
func TestToken_RenovacaoUnicaConcorrente(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.Form.Get("grant_type"))
		assert.Equal(t, "user", r.Form.Get("username"))
		fmt.Fprint(w, `{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	m := NewTokenManager(testERPConfig(srv.URL), testLogger())

	const n = 20
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := m.Token(context.Background())
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "apenas uma chamada ao endpoint de token")
	for _, tok := range tokens {
		assert.Equal(t, "tok-1", tok)
	}
}

// Token dentro da margem de segurança é considerado expirado e renovado.
func TestToken_RenovaDentroDaMargem(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":3600}`, n)
	}))
	defer srv.Close()

	m := NewTokenManager(testERPConfig(srv.URL), testLogger())

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	// Avança o relógio até faltar menos que a margem para expirar.
	base := time.Now()
	m.now = func() time.Time { return base.Add(3600*time.Second - 30*time.Second) }

	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok, "token renovado dentro da margem de segurança")
	assert.Equal(t, int32(2), calls.Load())
}

// Credenciais rejeitadas pelo ERP viram erp.AuthError, sem retry.
func TestToken_CredenciaisRejeitadas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewTokenManager(testERPConfig(srv.URL), testLogger())

	_, err := m.Token(context.Background())
	var authErr *erp.AuthError
	require.ErrorAs(t, err, &authErr)
}

// Erro do servidor de autenticação vira erp.UpstreamAuthError.
func TestToken_ErroDoServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewTokenManager(testERPConfig(srv.URL), testLogger())

	_, err := m.Token(context.Background())
	var upErr *erp.UpstreamAuthError
	require.ErrorAs(t, err, &upErr)
	assert.False(t, errors.As(err, new(*erp.AuthError)), "erro do servidor não é falha de credencial")
}

// Invalidate só descarta o token informado: se outro caller já renovou, o
// token novo permanece.
func TestToken_InvalidateNaoDescartaTokenNovo(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":3600}`, n)
	}))
	defer srv.Close()

	m := NewTokenManager(testERPConfig(srv.URL), testLogger())

	old, err := m.Token(context.Background())
	require.NoError(t, err)

	m.Invalidate(old)
	renewed, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, old, renewed)

	// Invalidar o token antigo de novo não derruba o vigente.
	m.Invalidate(old)
	current, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, renewed, current)
	assert.Equal(t, int32(2), calls.Load())
}
