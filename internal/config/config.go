package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Erros de configuração obrigatória. Qualquer um deles encerra o processo.
var (
	ErrMissingAccessToken  = errors.New("META_ACCESS_TOKEN é obrigatório")
	ErrMissingOrganization = errors.New("ORGANIZATION_ID é obrigatório")
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL é obrigatório")
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Organization Organization `mapstructure:",squash"`
	Sync         Sync         `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Metrics      Metrics      `mapstructure:",squash"`
}

type Server struct {
	Host  string `mapstructure:"host"`
	Port  string `mapstructure:"port"`
	Token string `mapstructure:"ops_api_token"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type Meta struct {
	BaseURL     string `mapstructure:"meta_base_url"`
	URL         string `mapstructure:"meta_url"`
	Version     string `mapstructure:"meta_version"`
	AccessToken string `mapstructure:"meta_access_token"`
}

type Organization struct {
	ID string `mapstructure:"organization_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Sync agrupa os parâmetros do pipeline de sincronização com a API de anúncios
type Sync struct {
	RequestTimeout          time.Duration   `mapstructure:"sync_request_timeout"`
	RequestDelay            time.Duration   `mapstructure:"sync_request_delay"`
	AccountDelay            time.Duration   `mapstructure:"sync_account_delay"`
	BackoffSchedule         []time.Duration `mapstructure:"sync_backoff_schedule"`
	Levels                  []string        `mapstructure:"sync_levels"`
	BreakdownTypes          []string        `mapstructure:"sync_breakdown_types"`
	BreakdownDaysBack       int             `mapstructure:"sync_breakdown_days_back"`
	BackfillBatchDays       int             `mapstructure:"sync_backfill_batch_days"`
	StructureLookbackMonths int             `mapstructure:"sync_structure_lookback_months"`
	StructurePageSize       int             `mapstructure:"sync_structure_page_size"`
	InsightsPageSize        int             `mapstructure:"sync_insights_page_size"`
	CreativeBatchSize       int             `mapstructure:"sync_creative_batch_size"`
	CreativeBackfillLimit   int             `mapstructure:"sync_creative_backfill_limit"`
	MaterializedView        string          `mapstructure:"sync_materialized_view"`
	CronSchedule            string          `mapstructure:"sync_cron"`
	LookbackDays            int             `mapstructure:"sync_lookback_days"`
	Enabled                 bool            `mapstructure:"sync_enabled"`
	LockTTL                 time.Duration   `mapstructure:"sync_lock_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Metrics struct {
	Namespace      string `mapstructure:"metrics_namespace"`
	PushgatewayURL string `mapstructure:"metrics_pushgateway_url"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")

	viper.SetDefault("SYNC_REQUEST_TIMEOUT", "60s")
	viper.SetDefault("SYNC_REQUEST_DELAY", "1s")  // intervalo mínimo entre chamadas à API
	viper.SetDefault("SYNC_ACCOUNT_DELAY", "3s")  // pausa entre contas
	viper.SetDefault("SYNC_BACKOFF_SCHEDULE", "15s,30s,60s,120s")
	viper.SetDefault("SYNC_LEVELS", "account,campaign,ad")
	viper.SetDefault("SYNC_BREAKDOWN_TYPES", "age_gender,device,placement,region,hourly")
	viper.SetDefault("SYNC_BREAKDOWN_DAYS_BACK", 2)
	viper.SetDefault("SYNC_BACKFILL_BATCH_DAYS", 14)
	viper.SetDefault("SYNC_STRUCTURE_LOOKBACK_MONTHS", 18)
	viper.SetDefault("SYNC_STRUCTURE_PAGE_SIZE", 200)
	viper.SetDefault("SYNC_INSIGHTS_PAGE_SIZE", 500)
	viper.SetDefault("SYNC_CREATIVE_BATCH_SIZE", 50)
	viper.SetDefault("SYNC_CREATIVE_BACKFILL_LIMIT", 500)
	viper.SetDefault("SYNC_MATERIALIZED_VIEW", "mv_account_daily_performance")

	viper.SetDefault("SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 3)
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_LOCK_TTL", "6h")

	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("METRICS_NAMESPACE", "ads_sync")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	// AutomaticEnv só resolve chaves conhecidas; registramos todas antes do Unmarshal
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	if config.Database.URL != "" {
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s?sslmode=%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
			config.Database.SSLMode,
		)
	}

	return config, nil
}

// Validate verifica as configurações sem as quais o pipeline não pode iniciar
func (c *Config) Validate() error {
	var errs []error

	if c.Meta.AccessToken == "" {
		errs = append(errs, ErrMissingAccessToken)
	}

	if c.Organization.ID == "" {
		errs = append(errs, ErrMissingOrganization)
	}

	if c.Database.URL == "" {
		errs = append(errs, ErrMissingDatabaseURL)
	}

	return errors.Join(errs...)
}

var envKeys = []string{
	"DATABASE_URL",
	"META_ACCESS_TOKEN",
	"ORGANIZATION_ID",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"METRICS_PUSHGATEWAY_URL",
	"OPS_API_TOKEN",
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
