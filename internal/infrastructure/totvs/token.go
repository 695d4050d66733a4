// Package totvs implementa o acesso HTTP ao ERP TOTVS Moda: emissão e cache
// do bearer token, busca paginada com retry e os clientes por recurso.
package totvs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/pkg/config"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// TokenManager mantém o bearer token do ERP: um token vivo por processo, com
// renovação única mesmo sob chamadas concorrentes. As demais goroutines
// esperam a renovação em andamento em vez de disparar a sua.
type TokenManager struct {
	cfg    config.ERPConfig
	client *http.Client
	log    *logger.Logger
	now    func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager constrói o gerenciador. O token só é obtido na primeira
// chamada a Token, não na construção.
func NewTokenManager(cfg config.ERPConfig, log *logger.Logger) *TokenManager {
	return &TokenManager{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.TokenTimeout,
		},
		log: log,
		now: time.Now,
	}
}

// Token devolve um bearer token válido, renovando se o atual está expirado ou
// dentro da margem de segurança. Falha com erp.AuthError se o ERP rejeitar as
// credenciais configuradas.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Add(m.cfg.TokenSafetyMargin).Before(m.expiresAt) {
		return m.token, nil
	}
	if err := m.refreshLocked(ctx); err != nil {
		return "", err
	}
	return m.token, nil
}

// Invalidate descarta o token informado se ainda for o vigente. Chamado pelo
// fetcher ao receber 401 num recurso: o próximo Token renova. Se outro caller
// já renovou nesse meio-tempo, o token novo fica intacto.
func (m *TokenManager) Invalidate(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == token {
		m.token = ""
		m.expiresAt = time.Time{}
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (m *TokenManager) refreshLocked(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", m.cfg.GrantType)
	form.Set("client_id", m.cfg.ClientID)
	form.Set("client_secret", m.cfg.ClientSecret)
	form.Set("username", m.cfg.Username)
	form.Set("password", m.cfg.Password)

	endpoint := m.cfg.BaseURL + m.cfg.TokenEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("ERP: criar request de token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := m.now()
	resp, err := m.client.Do(req)
	if err != nil {
		return &erp.UpstreamAuthError{Err: fmt.Errorf("chamada ao endpoint de token: %w", err)}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return &erp.UpstreamAuthError{Err: fmt.Errorf("ler resposta do token: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		// Credenciais configuradas rejeitadas: não adianta repetir.
		return &erp.AuthError{Err: fmt.Errorf("ERP rejeitou as credenciais (HTTP %d): %s", resp.StatusCode, rawBody)}
	case resp.StatusCode != http.StatusOK:
		return &erp.UpstreamAuthError{Err: fmt.Errorf("endpoint de token devolveu HTTP %d: %s", resp.StatusCode, rawBody)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil {
		return &erp.UpstreamAuthError{Err: fmt.Errorf("deserializar resposta do token: %w", err)}
	}
	if tr.AccessToken == "" || tr.ExpiresIn <= 0 {
		return &erp.UpstreamAuthError{Err: fmt.Errorf("resposta do token sem access_token ou expires_in")}
	}

	m.token = tr.AccessToken
	m.expiresAt = start.Add(time.Duration(tr.ExpiresIn) * time.Second)

	m.log.Debug().
		Time("expires_at", m.expiresAt).
		Dur("elapsed", m.now().Sub(start)).
		Msg("token do ERP renovado")
	return nil
}
