package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
	HTTP HTTPConfig
	ERP  ERPConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o construído com DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve o connection string do PostgreSQL com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração do JWT emitido pelo painel (não confundir com o token do ERP).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ERPConfig configuração da integração com o ERP TOTVS (endpoint único por processo).
type ERPConfig struct {
	BaseURL     string
	CompanyCode int

	// Credenciais OAuth (password grant)
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	GrantType    string

	// Endpoints relativos a BaseURL
	TokenEndpoint               string
	BalancesEndpoint            string
	CostsEndpoint               string
	ProductsEndpoint            string
	IndividualsEndpoint         string
	LegalEntitiesEndpoint       string
	PersonStatsEndpoint         string
	ReceivableDocumentsEndpoint string
	ReceivableBankSlipEndpoint  string
	FiscalInvoicesEndpoint      string
	FiscalXMLEndpoint           string
	FiscalDanfeEndpoint         string

	// Paginação e resiliência. Valores operacionais: ajustar por env, não no código.
	PageSize          int
	FiscalPageSize    int           // o endpoint fiscal rejeita pageSize > 100
	MaxRetries        int
	RetryDelay        time.Duration // espera entre tentativas (cresce linearmente)
	RequestTimeout    time.Duration
	TokenTimeout      time.Duration
	TokenSafetyMargin time.Duration // antecedência com que o token é considerado expirado
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo .env).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, ERP_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "painel-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "painel"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 24*60),
			Issuer:     getString(v, "JWT_ISSUER", "painel-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5004),
		},
		ERP: ERPConfig{
			BaseURL:      strings.TrimRight(getString(v, "ERP_BASE_URL", "http://localhost:11980/api/totvsmoda"), "/"),
			CompanyCode:  getInt(v, "ERP_COMPANY_CODE", 1),
			ClientID:     getString(v, "ERP_CLIENT_ID", ""),
			ClientSecret: getString(v, "ERP_CLIENT_SECRET", ""),
			Username:     getString(v, "ERP_USERNAME", ""),
			Password:     getString(v, "ERP_PASSWORD", ""),
			GrantType:    getString(v, "ERP_GRANT_TYPE", "password"),

			TokenEndpoint:               getString(v, "ERP_TOKEN_ENDPOINT", "/authorization/v2/token"),
			BalancesEndpoint:            getString(v, "ERP_BALANCES_ENDPOINT", "/product/v2/balances/search"),
			CostsEndpoint:               getString(v, "ERP_COSTS_ENDPOINT", "/product/v2/costs/search"),
			ProductsEndpoint:            getString(v, "ERP_PRODUCTS_ENDPOINT", "/product/v2/products/search"),
			IndividualsEndpoint:         getString(v, "ERP_INDIVIDUALS_ENDPOINT", "/person/v2/individuals/search"),
			LegalEntitiesEndpoint:       getString(v, "ERP_LEGAL_ENTITIES_ENDPOINT", "/person/v2/legal-entities/search"),
			PersonStatsEndpoint:         getString(v, "ERP_PERSON_STATS_ENDPOINT", "/person/v2/person-statistics"),
			ReceivableDocumentsEndpoint: getString(v, "ERP_AR_DOCUMENTS_ENDPOINT", "/accounts-receivable/v2/documents/search"),
			ReceivableBankSlipEndpoint:  getString(v, "ERP_AR_BANKSLIP_ENDPOINT", "/accounts-receivable/v2/bank-slip"),
			FiscalInvoicesEndpoint:      getString(v, "ERP_FISCAL_INVOICES_ENDPOINT", "/fiscal/v2/invoices/search"),
			FiscalXMLEndpoint:           getString(v, "ERP_FISCAL_XML_ENDPOINT", "/fiscal/v2/xml-contents"),
			FiscalDanfeEndpoint:         getString(v, "ERP_FISCAL_DANFE_ENDPOINT", "/fiscal/v2/danfe-search"),

			PageSize:          getInt(v, "ERP_PAGE_SIZE", 1000),
			FiscalPageSize:    getInt(v, "ERP_FISCAL_PAGE_SIZE", 50),
			MaxRetries:        getInt(v, "ERP_MAX_RETRIES", 3),
			RetryDelay:        time.Duration(getInt(v, "ERP_RETRY_DELAY_MS", 500)) * time.Millisecond,
			RequestTimeout:    time.Duration(getInt(v, "ERP_REQUEST_TIMEOUT_S", 45)) * time.Second,
			TokenTimeout:      time.Duration(getInt(v, "ERP_TOKEN_TIMEOUT_S", 15)) * time.Second,
			TokenSafetyMargin: time.Duration(getInt(v, "ERP_TOKEN_SAFETY_MARGIN_S", 60)) * time.Second,
		},
	}

	// O endpoint fiscal do TOTVS limita pageSize a 100.
	if cfg.ERP.FiscalPageSize > 100 {
		cfg.ERP.FiscalPageSize = 100
	}
	if cfg.ERP.FiscalPageSize < 1 {
		cfg.ERP.FiscalPageSize = 50
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
