package totvs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"time"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/pkg/config"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// Fetcher percorre os endpoints paginados de busca do ERP, tratando retry de
// falhas transitórias e renovação de token em 401. Cada FetchAll produz uma
// sequência preguiçosa: nenhuma página é buscada antes do consumo, e quem
// interrompe o range cedo não paga pelas páginas restantes.
type Fetcher struct {
	cfg    config.ERPConfig
	tokens *TokenManager
	client *http.Client
	log    *logger.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewFetcher constrói o fetcher sobre um TokenManager compartilhado.
func NewFetcher(cfg config.ERPConfig, tokens *TokenManager, log *logger.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		tokens: tokens,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		log:   log,
		sleep: sleepCtx,
	}
}

// searchPage moldura de resposta dos endpoints de busca paginada do ERP.
type searchPage struct {
	Count      int               `json:"count"`
	TotalPages int               `json:"totalPages"`
	HasNext    bool              `json:"hasNext"`
	TotalItems int               `json:"totalItems"`
	Items      []json.RawMessage `json:"items"`
}

// FetchAll devolve a sequência de todos os registros do recurso, na ordem das
// páginas do ERP. payload são os filtros do recurso; page e pageSize são
// acrescentados aqui (páginas do ERP começam em 1).
//
// A sequência termina quando o acumulado alcança totalItems, quando vem uma
// página vazia ou quando hasNext é falso — o que vier primeiro; ERPs que
// subestimam o total não causam loop infinito. A sequência é finita e não
// reiniciável: um segundo range sobre ela não refaz as buscas.
//
// Erros chegam como segundo elemento do par: transitórios já esgotaram as
// tentativas configuradas; 401 repetido vira erp.UpstreamAuthError. Depois de
// um erro a sequência encerra.
func (f *Fetcher) FetchAll(ctx context.Context, path string, payload map[string]any, pageSize int) iter.Seq2[json.RawMessage, error] {
	if pageSize <= 0 {
		pageSize = f.cfg.PageSize
	}
	consumed := false
	return func(yield func(json.RawMessage, error) bool) {
		if consumed {
			return
		}
		consumed = true
		total := -1
		fetched := 0
		for page := 1; ; page++ {
			pg, err := f.fetchPage(ctx, path, payload, page, pageSize)
			if err != nil {
				yield(nil, err)
				return
			}
			if pg.TotalItems > 0 {
				total = pg.TotalItems
			}
			if len(pg.Items) == 0 {
				return
			}
			for _, item := range pg.Items {
				if !yield(item, nil) {
					return
				}
				fetched++
				if total >= 0 && fetched >= total {
					return
				}
			}
			if !pg.HasNext {
				return
			}
		}
	}
}

// fetchPage busca uma única página, com retry linear para falhas transitórias
// e uma renovação de token em caso de 401. Um segundo 401 consecutivo na
// mesma página indica problema de autenticação no upstream, não token velho.
func (f *Fetcher) fetchPage(ctx context.Context, path string, payload map[string]any, page, pageSize int) (*searchPage, error) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["page"] = page
	body["pageSize"] = pageSize

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ERP: serializar payload de %s: %w", path, err)
	}

	var lastErr error
	retriedAuth := false
	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			if err := f.sleep(ctx, time.Duration(attempt-1)*f.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}

		token, err := f.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		pg, status, err := f.doSearch(ctx, path, encoded, token)
		switch {
		case err == nil:
			return pg, nil
		case status == http.StatusUnauthorized:
			// Token expirado no servidor antes da margem local: renova e
			// repete a mesma página uma vez.
			f.tokens.Invalidate(token)
			if retriedAuth {
				return nil, &erp.UpstreamAuthError{Err: fmt.Errorf("401 repetido em %s após renovar o token", path)}
			}
			retriedAuth = true
			attempt-- // a repetição por 401 não consome tentativa
			lastErr = err
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", path, erp.ErrNotFound)
		case status >= 400 && status < 500:
			// Erro de requisição: repetir não muda o resultado.
			return nil, err
		default:
			// Rede, timeout ou 5xx: transitório.
			f.log.Warn().
				Str("path", path).
				Int("page", page).
				Int("attempt", attempt).
				Err(err).
				Msg("falha transitória na busca paginada do ERP")
			lastErr = err
		}
	}
	return nil, lastErr
}

// Do executa uma chamada autenticada não paginada (boleto, DANFE, XML,
// estatísticas), com o mesmo retry e tratamento de 401 da busca paginada.
// payload nil gera requisição sem corpo; query vai na URL.
func (f *Fetcher) Do(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, error) {
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("ERP: serializar payload de %s: %w", path, err)
		}
	}

	target := f.cfg.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	retriedAuth := false
	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			if err := f.sleep(ctx, time.Duration(attempt-1)*f.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}

		token, err := f.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		raw, status, err := f.doRequest(ctx, method, target, encoded, token)
		switch {
		case err == nil:
			return raw, nil
		case status == http.StatusUnauthorized:
			f.tokens.Invalidate(token)
			if retriedAuth {
				return nil, &erp.UpstreamAuthError{Err: fmt.Errorf("401 repetido em %s após renovar o token", path)}
			}
			retriedAuth = true
			attempt--
			lastErr = err
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", path, erp.ErrNotFound)
		case status >= 400 && status < 500:
			return nil, err
		default:
			f.log.Warn().
				Str("method", method).
				Str("path", path).
				Int("attempt", attempt).
				Err(err).
				Msg("falha transitória em chamada ao ERP")
			lastErr = err
		}
	}
	return nil, lastErr
}

func (f *Fetcher) doRequest(ctx context.Context, method, target string, encoded []byte, token string) (json.RawMessage, int, error) {
	var body io.Reader
	if encoded != nil {
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, 0, fmt.Errorf("ERP: criar request: %w", err)
	}
	if encoded != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, &erp.UpstreamError{Err: fmt.Errorf("chamada a %s: %w", target, err)}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, resp.StatusCode, &erp.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("ler resposta: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &erp.UpstreamError{
			Status: resp.StatusCode,
			Body:   truncateBody(rawBody),
			Err:    fmt.Errorf("HTTP %d em %s", resp.StatusCode, target),
		}
	}
	return rawBody, resp.StatusCode, nil
}

// doSearch executa um POST de busca. status é zero em falha de rede.
func (f *Fetcher) doSearch(ctx context.Context, path string, encoded []byte, token string) (*searchPage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, fmt.Errorf("ERP: criar request de %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, &erp.UpstreamError{Err: fmt.Errorf("chamada a %s: %w", path, err)}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, resp.StatusCode, &erp.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("ler resposta de %s: %w", path, err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, &erp.UpstreamError{
			Status: resp.StatusCode,
			Body:   truncateBody(rawBody),
			Err:    fmt.Errorf("%s devolveu HTTP %d", path, resp.StatusCode),
		}
	}

	var pg searchPage
	if err := json.Unmarshal(rawBody, &pg); err != nil {
		return nil, resp.StatusCode, &erp.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("deserializar página de %s: %w", path, err)}
	}
	return &pg, resp.StatusCode, nil
}

// truncateBody limita o corpo guardado no erro (respostas de erro do TOTVS
// podem trazer stacktraces longos).
func truncateBody(b []byte) string {
	const max = 2048
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "…"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
