package totvs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// newTestFetcher monta um servidor que emite tokens em /authorization/v2/token
// e delega o resto ao handler do teste, mais um fetcher sem espera entre
// tentativas.
func newTestFetcher(t *testing.T, handler http.HandlerFunc) (*Fetcher, *httptest.Server, *atomic.Int32) {
	t.Helper()
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/authorization/v2/token", func(w http.ResponseWriter, r *http.Request) {
		n := tokenCalls.Add(1)
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":3600}`, n)
	})
	mux.HandleFunc("/", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := testERPConfig(srv.URL)
	f := NewFetcher(cfg, NewTokenManager(cfg, testLogger()), testLogger())
	f.sleep = func(context.Context, time.Duration) error { return nil }
	return f, srv, &tokenCalls
}

type pageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func writePage(w http.ResponseWriter, items []string, totalItems int, hasNext bool) {
	raw := make([]json.RawMessage, len(items))
	for i, it := range items {
		raw[i] = json.RawMessage(it)
	}
	_ = json.NewEncoder(w).Encode(searchPage{
		Count:      len(raw),
		TotalItems: totalItems,
		HasNext:    hasNext,
		Items:      raw,
	})
}

func collect(seq func(func(json.RawMessage, error) bool)) ([]string, error) {
	var out []string
	for raw, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, string(raw))
	}
	return out, nil
}

// Upstream com T registros em P páginas: FetchAll devolve exatamente T, na
// ordem das páginas.
func TestFetchAll_TodosOsRegistrosNaOrdem(t *testing.T) {
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Page {
		case 1:
			writePage(w, []string{`{"n":1}`, `{"n":2}`}, 5, true)
		case 2:
			writePage(w, []string{`{"n":3}`, `{"n":4}`}, 5, true)
		case 3:
			writePage(w, []string{`{"n":5}`}, 5, false)
		default:
			t.Errorf("página inesperada: %d", req.Page)
		}
	})

	items, err := collect(f.FetchAll(context.Background(), "/search", nil, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`, `{"n":3}`, `{"n":4}`, `{"n":5}`}, items)
}

// totalItems alcançado encerra a sequência mesmo com hasNext verdadeiro —
// proteção contra upstream que subreporta o fim.
func TestFetchAll_ParaAoAlcancarTotal(t *testing.T) {
	var pages atomic.Int32
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		writePage(w, []string{`{"n":1}`, `{"n":2}`}, 2, true)
	})

	items, err := collect(f.FetchAll(context.Background(), "/search", nil, 2))
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(1), pages.Load(), "nenhuma página além do total")
}

// Página vazia encerra a sequência sem erro.
func TestFetchAll_ParaEmPaginaVazia(t *testing.T) {
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Page == 1 {
			writePage(w, []string{`{"n":1}`}, 10, true)
		} else {
			writePage(w, nil, 10, false)
		}
	})

	items, err := collect(f.FetchAll(context.Background(), "/search", nil, 1))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// A sequência é preguiçosa: quem interrompe o range não paga pelas páginas
// seguintes.
func TestFetchAll_Preguicosa(t *testing.T) {
	var pages atomic.Int32
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		writePage(w, []string{`{"n":1}`}, 100, true)
	})

	for range f.FetchAll(context.Background(), "/search", nil, 1) {
		break
	}
	assert.Equal(t, int32(1), pages.Load(), "só a primeira página foi buscada")
}

// Um 401 no meio da sequência renova o token e repete a mesma página uma vez.
func TestFetchAll_401RenovaERepete(t *testing.T) {
	var denied atomic.Bool
	f, _, tokenCalls := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-1" && !denied.Swap(true) {
			// O primeiro token "expirou" no servidor.
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writePage(w, []string{`{"n":1}`}, 1, false)
	})

	items, err := collect(f.FetchAll(context.Background(), "/search", nil, 1))
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(2), tokenCalls.Load(), "exatamente uma renovação de token")
}

// 401 repetido após renovar o token vira erp.UpstreamAuthError.
func TestFetchAll_401RepetidoFalha(t *testing.T) {
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := collect(f.FetchAll(context.Background(), "/search", nil, 1))
	var authErr *erp.UpstreamAuthError
	require.ErrorAs(t, err, &authErr)
}

// Falhas transitórias são repetidas até o limite configurado.
func TestFetchAll_RetryTransitorio(t *testing.T) {
	var attempts atomic.Int32
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writePage(w, []string{`{"n":1}`}, 1, false)
	})

	items, err := collect(f.FetchAll(context.Background(), "/search", nil, 1))
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(3), attempts.Load())
}

// Esgotadas as tentativas, o erro exposto é erp.UpstreamError com o status e
// o corpo da última resposta.
func TestFetchAll_EsgotaTentativas(t *testing.T) {
	var attempts atomic.Int32
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "indisponível", http.StatusServiceUnavailable)
	})

	_, err := collect(f.FetchAll(context.Background(), "/search", nil, 1))
	var upErr *erp.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
	assert.Contains(t, upErr.Body, "indisponível")
	assert.Equal(t, int32(3), attempts.Load(), "MaxRetries tentativas")
}

// Erros 4xx não transitórios não são repetidos.
func TestFetchAll_400NaoRepete(t *testing.T) {
	var attempts atomic.Int32
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "filtro inválido", http.StatusBadRequest)
	})

	_, err := collect(f.FetchAll(context.Background(), "/search", nil, 1))
	var upErr *erp.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadRequest, upErr.Status)
	assert.Equal(t, int32(1), attempts.Load())
}

// Um segundo range sobre a mesma sequência não refaz as buscas.
func TestFetchAll_NaoReiniciavel(t *testing.T) {
	var pages atomic.Int32
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		writePage(w, []string{`{"n":1}`}, 1, false)
	})

	seq := f.FetchAll(context.Background(), "/search", nil, 1)
	first, err := collect(seq)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := collect(seq)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, int32(1), pages.Load())
}

// Do mapeia 404 para erp.ErrNotFound.
func TestDo_404ViraNotFound(t *testing.T) {
	f, _, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := f.Do(context.Background(), http.MethodGet, "/fiscal/v2/xml-contents/123", nil, nil)
	require.True(t, errors.Is(err, erp.ErrNotFound))
}
