package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Card     CardConfig     `mapstructure:"card"`
	Contacts ContactsConfig `mapstructure:"contacts"`
	Email    EmailConfig    `mapstructure:"email"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CardConfig holds card rendering configuration
type CardConfig struct {
	// Template is the path to the base card image (PNG/JPG)
	Template string `mapstructure:"template"`
	// Font is the path to a .ttf/.otf font; empty uses the fallback chain
	Font string `mapstructure:"font"`
	// Box is an explicit "x,y,w,h" name area; empty uses the bottom band
	Box string `mapstructure:"box"`
	// BottomRatio is the height ratio of the bottom band when Box is empty
	BottomRatio float64 `mapstructure:"bottom_ratio"`
	// Margin is the inner margin in pixels for the text box
	Margin int `mapstructure:"margin"`
	// YOffset is the vertical offset inside the box (+down)
	YOffset int `mapstructure:"y_offset"`
	// Color is the text color as "R,G,B"
	Color string `mapstructure:"color"`
	// Shadow adds a subtle shadow behind the text
	Shadow bool `mapstructure:"shadow"`
	// StrokeWidth is the outline width around the name text
	StrokeWidth int `mapstructure:"stroke_width"`
	// AddDate draws today's date in a small line above the name
	AddDate bool `mapstructure:"add_date"`
	// OutDir is where rendered cards are written in batch mode
	OutDir string `mapstructure:"out_dir"`
}

// ContactsConfig holds Google People API configuration
type ContactsConfig struct {
	// CredentialsPath is the OAuth2 client secrets JSON file
	CredentialsPath string `mapstructure:"credentials_path"`
	// TokenPath is where the authorized user token is cached
	TokenPath string `mapstructure:"token_path"`
	// GroupName is the contact group whose members receive cards
	GroupName string `mapstructure:"group_name"`
	// GroupFallbackID is used when GroupName cannot be resolved
	GroupFallbackID string `mapstructure:"group_fallback_id"`
	// PageSize is the connections page size per request
	PageSize int64 `mapstructure:"page_size"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the email provider to use: "smtp" or "gmail"
	Provider string `mapstructure:"provider"`
	// FromAddress is the sender email address
	FromAddress string `mapstructure:"from_address"`
	// FromName is the display name for the sender
	FromName string `mapstructure:"from_name"`
	// Subject is the email subject; "{name}" is replaced per recipient
	Subject string `mapstructure:"subject"`
	// ClubName appears in the email body
	ClubName string `mapstructure:"club_name"`
	// SMTP holds SMTP transport configuration
	SMTP SMTPConfig `mapstructure:"smtp"`
	// Gmail holds Gmail API configuration
	Gmail GmailEmailConfig `mapstructure:"gmail"`
}

// SMTPConfig holds SMTP transport configuration
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GmailEmailConfig holds Gmail API configuration
type GmailEmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// LedgerConfig holds send ledger configuration
type LedgerConfig struct {
	// Backend selects the ledger storage: "csv" or "postgres"
	Backend string `mapstructure:"backend"`
	// Path is the CSV ledger file location (csv backend)
	Path string `mapstructure:"path"`
	// Database holds PostgreSQL configuration (postgres backend)
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/discobolo")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("BIRTHDAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Card defaults
	v.SetDefault("card.template", "card_last.png")
	v.SetDefault("card.font", "")
	v.SetDefault("card.box", "")
	v.SetDefault("card.bottom_ratio", 0.23)
	v.SetDefault("card.margin", 24)
	v.SetDefault("card.y_offset", 0)
	v.SetDefault("card.color", "234,199,77")
	v.SetDefault("card.shadow", false)
	v.SetDefault("card.stroke_width", 1)
	v.SetDefault("card.add_date", false)
	v.SetDefault("card.out_dir", "out")

	// Contacts defaults
	v.SetDefault("contacts.credentials_path", "credentials.json")
	v.SetDefault("contacts.token_path", "token.json")
	v.SetDefault("contacts.group_name", "")
	v.SetDefault("contacts.group_fallback_id", "")
	v.SetDefault("contacts.page_size", 2000)

	// Email defaults
	v.SetDefault("email.provider", "smtp")
	v.SetDefault("email.from_name", "Club Discóbolo")
	v.SetDefault("email.subject", "🎉 ¡Feliz Cumple {name}!")
	v.SetDefault("email.club_name", "Club Discóbolo")
	v.SetDefault("email.smtp.host", "smtp.gmail.com")
	v.SetDefault("email.smtp.port", 465)

	// Ledger defaults
	v.SetDefault("ledger.backend", "csv")
	v.SetDefault("ledger.path", "sent_birthdays.csv")
	v.SetDefault("ledger.database.host", "localhost")
	v.SetDefault("ledger.database.port", 5432)
	v.SetDefault("ledger.database.name", "discobolo")
	v.SetDefault("ledger.database.user", "discobolo")
	v.SetDefault("ledger.database.password", "")
	v.SetDefault("ledger.database.ssl_mode", "disable")
	v.SetDefault("ledger.database.max_connections", 5)
}
