package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	SellerHub      SellerHub      `mapstructure:",squash"`
	SellerHubSync  SellerHubSync  `mapstructure:",squash"`
	RankingRefresh RankingRefresh `mapstructure:",squash"`
	DemoData       DemoData       `mapstructure:",squash"`
	Insights       Insights       `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Redis struct {
	Enabled  bool   `mapstructure:"redis_enabled"`
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type SellerHub struct {
	BaseURL string `mapstructure:"sellerhub_base_url"`
	APIKey  string `mapstructure:"sellerhub_api_key"`
	// Sessão obtida em runtime a partir da API key; nunca vem do ambiente.
	SessionToken     string    `mapstructure:"-"`
	SessionExpiresAt time.Time `mapstructure:"-"`
	PageSize         int       `mapstructure:"sellerhub_page_size"`
}

type SellerHubSync struct {
	CronSchedule string `mapstructure:"sellerhub_sync_cron"`
	LookbackDays int    `mapstructure:"sellerhub_sync_lookback_days"`
	Enabled      bool   `mapstructure:"sellerhub_sync_enabled"`
}

type RankingRefresh struct {
	CronSchedule string `mapstructure:"ranking_refresh_cron"`
	Enabled      bool   `mapstructure:"ranking_refresh_enabled"`
}

type DemoData struct {
	Enabled bool  `mapstructure:"demo_data_enabled"`
	Seed    int64 `mapstructure:"demo_data_seed"`
}

type Insights struct {
	CacheTTLMinutes int `mapstructure:"insights_cache_ttl_minutes"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/chaivision")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("SELLERHUB_BASE_URL", "https://api.sellerhub.io/v2")
	viper.SetDefault("SELLERHUB_API_KEY", "your_api_key")
	viper.SetDefault("SELLERHUB_PAGE_SIZE", 200)

	// Defaults para sincronização com o SellerHub
	viper.SetDefault("SELLERHUB_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SELLERHUB_SYNC_LOOKBACK_DAYS", 7)  // 7 dias para buscar dados
	viper.SetDefault("SELLERHUB_SYNC_ENABLED", false)    // Habilitar sincronização de vendas

	// Defaults para o recálculo do ranking
	viper.SetDefault("RANKING_REFRESH_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("RANKING_REFRESH_ENABLED", false)    // Habilitar recálculo do ranking

	viper.SetDefault("DEMO_DATA_ENABLED", false)
	viper.SetDefault("DEMO_DATA_SEED", 20240101)

	viper.SetDefault("INSIGHTS_CACHE_TTL_MINUTES", 15)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
