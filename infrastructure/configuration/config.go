package configuration

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ig-dashboard/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Database    Database    `json:"database"`
	App         App         `json:"app"`
	RedisClient RedisClient `json:"redisClient"`
	OAuth       OAuth       `json:"oauth"`
	Graph       Graph       `json:"graph"`
	Session     Session     `json:"session"`
}

type App struct {
	Port           int      `json:"port"`
	TLSEnabled     bool     `json:"tlsEnabled"`
	TLSCertFile    string   `json:"tlsCertFile"`
	TLSKeyFile     string   `json:"tlsKeyFile"`
	AllowedOrigins []string `json:"allowedOrigins"`
	// AuthRateLimit uses the limiter format, e.g. "30-M".
	AuthRateLimit string `json:"authRateLimit"`
}

type Database struct {
	// Vendor selects the store: "postgres" (default) or "mssql".
	Vendor string `json:"vendor"`
	// URL, when set, is used verbatim as the PostgreSQL DSN.
	URL   string `json:"url"`
	Psql  Db     `json:"psql"`
	Mssql Db     `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisClient) Addr() string {
	if r.Host == "" {
		return ""
	}
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// OAuth holds third-party platform OAuth client credentials
type OAuth struct {
	Facebook OAuthClient `json:"facebook"`
}

type OAuthClient struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
}

// Graph points the client at the Facebook Graph API.
type Graph struct {
	BaseURL   string        `json:"baseURL"`
	DialogURL string        `json:"dialogURL"`
	Version   string        `json:"version"`
	Timeout   time.Duration `json:"timeout"`
}

type Session struct {
	// Store is "redis" or "memory".
	Store      string        `json:"store"`
	Secret     string        `json:"secret"`
	CookieName string        `json:"cookieName"`
	TTL        time.Duration `json:"ttl"`
}

var C Config

func init() {
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
	initDatabase(&C)
	initRedis(&C)
	initOAuth(&C)
	initGraph(&C)
	initSession(&C)
	initApp(&C)
	// Prefer https redirect URIs locally when TLS enabled
	if C.App.TLSEnabled {
		if C.OAuth.Facebook.RedirectURI != "" && !hasHTTPS(C.OAuth.Facebook.RedirectURI) {
			C.OAuth.Facebook.RedirectURI = toHTTPSCallback(C.OAuth.Facebook.RedirectURI)
		}
	}
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// setIfEmpty fills *dst from the first non-empty environment variable.
func setIfEmpty(dst *string, keys ...string) {
	if *dst != "" {
		return
	}
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

// override replaces *dst when the environment variable is set.
func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func initDatabase(C *Config) {
	override(&C.Database.URL, "DATABASE_URL")
	override(&C.Database.Vendor, "DB_VENDOR")
	if C.Database.Vendor == "" {
		C.Database.Vendor = "postgres"
	}

	setIfEmpty(&C.Database.Psql.Name, "DB_NAME")
	setIfEmpty(&C.Database.Psql.Host, "DB_HOST")
	setIfEmpty(&C.Database.Psql.Port, "DB_PORT")
	setIfEmpty(&C.Database.Psql.User, "DB_USER")
	setIfEmpty(&C.Database.Psql.Password, "DB_PASSWORD")
	setIfEmpty(&C.Database.Psql.SSLMode, "DB_SSLMODE")
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = "localhost"
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}
	if C.Database.Psql.SSLMode == "" {
		C.Database.Psql.SSLMode = "disable"
	}

	setIfEmpty(&C.Database.Mssql.Name, "MSSQL_DB_NAME")
	setIfEmpty(&C.Database.Mssql.Host, "MSSQL_HOST")
	setIfEmpty(&C.Database.Mssql.Port, "MSSQL_PORT")
	setIfEmpty(&C.Database.Mssql.User, "MSSQL_USER")
	setIfEmpty(&C.Database.Mssql.Password, "MSSQL_PASSWORD")
	if C.Database.Mssql.Host == "" {
		C.Database.Mssql.Host = "localhost"
	}
	if C.Database.Mssql.Port == "" {
		C.Database.Mssql.Port = "1433"
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"vendor":     C.Database.Vendor,
		"urlSet":     C.Database.URL != "",
		"psqlHost":   C.Database.Psql.Host,
		"psqlDbName": C.Database.Psql.Name,
	}).Info("Database configuration")
}

func initRedis(C *Config) {
	setIfEmpty(&C.RedisClient.Host, "REDIS_HOST")
	setIfEmpty(&C.RedisClient.Port, "REDIS_PORT")
	setIfEmpty(&C.RedisClient.Password, "REDIS_PASSWORD")
	setIfEmpty(&C.RedisClient.Username, "REDIS_USERNAME")
}

func initOAuth(C *Config) {
	override(&C.OAuth.Facebook.ClientID, "FACEBOOK_APP_ID")
	override(&C.OAuth.Facebook.ClientSecret, "FACEBOOK_APP_SECRET")
	override(&C.OAuth.Facebook.RedirectURI, "REDIRECT_URI")

	secretState := "[NOT SET]"
	if C.OAuth.Facebook.ClientSecret != "" {
		secretState = "[SET]"
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"FACEBOOK_APP_ID":     C.OAuth.Facebook.ClientID,
		"FACEBOOK_APP_SECRET": secretState,
		"REDIRECT_URI":        C.OAuth.Facebook.RedirectURI,
	}).Info("Facebook OAuth configuration")
}

func initGraph(C *Config) {
	override(&C.Graph.BaseURL, "GRAPH_BASE_URL")
	override(&C.Graph.Version, "GRAPH_VERSION")
	if C.Graph.BaseURL == "" {
		C.Graph.BaseURL = "https://graph.facebook.com"
	}
	if C.Graph.DialogURL == "" {
		C.Graph.DialogURL = "https://www.facebook.com"
	}
	if C.Graph.Version == "" {
		C.Graph.Version = "v17.0"
	}
	if C.Graph.Timeout <= 0 {
		C.Graph.Timeout = 15 * time.Second
	}
}

func initSession(C *Config) {
	override(&C.Session.Secret, "SESSION_SECRET")
	override(&C.Session.Store, "SESSION_STORE")
	if C.Session.Store == "" {
		C.Session.Store = "redis"
	}
	if C.Session.CookieName == "" {
		C.Session.CookieName = "ig_session"
	}
	if C.Session.TTL <= 0 {
		C.Session.TTL = 24 * time.Hour
	}
	if C.Session.Secret == "" {
		C.Session.Secret = "instagram-app-secret"
		logger.GetLogger().Warn("SESSION_SECRET not set; using the development default. Provide SESSION_SECRET via environment.")
	}
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 5000
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 5000
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			C.App.TLSEnabled = b
		}
	}
	setIfEmpty(&C.App.TLSCertFile, "TLS_CERT_FILE")
	setIfEmpty(&C.App.TLSKeyFile, "TLS_KEY_FILE")
	if C.App.TLSEnabled {
		if C.App.TLSCertFile == "" {
			if _, err := os.Stat("certs/localhost.crt"); err == nil {
				C.App.TLSCertFile = "certs/localhost.crt"
			}
		}
		if C.App.TLSKeyFile == "" {
			if _, err := os.Stat("certs/localhost.key"); err == nil {
				C.App.TLSKeyFile = "certs/localhost.key"
			}
		}
		logger.GetLogger().WithFields(map[string]interface{}{"cert": C.App.TLSCertFile, "key": C.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}
	if C.App.AuthRateLimit == "" {
		C.App.AuthRateLimit = "30-M"
	}
}

// helpers to coerce local callback to https
func hasHTTPS(u string) bool { return len(u) >= 8 && u[:8] == "https://" }
func toHTTPSCallback(u string) string {
	if len(u) >= 7 && u[:7] == "http://" {
		return "https://" + u[7:]
	}
	return u
}
