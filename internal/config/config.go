package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Sheets    SheetsConfig
	Drive     DriveConfig
	Catalog   CatalogConfig
	Warehouse WarehouseConfig
	Alerts    AlertsConfig
	WhatsApp  WhatsAppConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// The WMS spreadsheet holds stock and the transaction log, the master
// spreadsheet holds items and locations.
type SheetsConfig struct {
	CredentialsPath     string
	WMSSpreadsheetID    string
	MasterSpreadsheetID string
}

// DriveConfig holds the OAuth client used to upload product photos.
type DriveConfig struct {
	ClientID        string
	ClientSecret    string
	RefreshToken    string
	PictureFolderID string
}

// Enabled reports whether enough credentials are present to talk to Drive.
func (d DriveConfig) Enabled() bool {
	return d.ClientID != "" && d.ClientSecret != "" && d.RefreshToken != ""
}

// CatalogConfig controls memoization of the master data reads.
type CatalogConfig struct {
	LocationTTL time.Duration
	ItemTTL     time.Duration
}

// WarehouseConfig holds workflow defaults.
type WarehouseConfig struct {
	Operator string
	Timezone string
}

// AlertsConfig holds the replenishment alert schedule.
type AlertsConfig struct {
	CronSchedule string
	Recipient    string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
}

// Enabled reports whether outbound WhatsApp messages can be sent.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != ""
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	locationTTL, err := getDurationWithDefault("LOCATION_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	itemTTL, err := getDurationWithDefault("ITEM_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Sheets: SheetsConfig{
			CredentialsPath:     os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			WMSSpreadsheetID:    os.Getenv("WMS_SPREADSHEET_ID"),
			MasterSpreadsheetID: os.Getenv("MASTER_SPREADSHEET_ID"),
		},
		Drive: DriveConfig{
			ClientID:        os.Getenv("DRIVE_CLIENT_ID"),
			ClientSecret:    os.Getenv("DRIVE_CLIENT_SECRET"),
			RefreshToken:    os.Getenv("DRIVE_REFRESH_TOKEN"),
			PictureFolderID: os.Getenv("DRIVE_PICTURE_FOLDER_ID"),
		},
		Catalog: CatalogConfig{
			LocationTTL: locationTTL,
			ItemTTL:     itemTTL,
		},
		Warehouse: WarehouseConfig{
			Operator: getenvWithDefault("WMS_OPERATOR", "Admin"),
			Timezone: getenvWithDefault("TIMEZONE", "Asia/Bangkok"),
		},
		Alerts: AlertsConfig{
			CronSchedule: getenvWithDefault("REPLEN_ALERT_CRON", "0 7 * * *"),
			Recipient:    os.Getenv("REPLEN_ALERT_RECIPIENT"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "wms"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Sheets.CredentialsPath == "":
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	case c.Sheets.WMSSpreadsheetID == "":
		return errors.New("WMS_SPREADSHEET_ID must be provided")
	case c.Sheets.MasterSpreadsheetID == "":
		return errors.New("MASTER_SPREADSHEET_ID must be provided")
	}

	if c.Drive.Enabled() && c.Drive.PictureFolderID == "" {
		return errors.New("DRIVE_PICTURE_FOLDER_ID must be provided when Drive credentials are set")
	}

	if c.Catalog.LocationTTL <= 0 || c.Catalog.ItemTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}

	if c.Warehouse.Operator == "" {
		return errors.New("WMS_OPERATOR must not be empty")
	}

	if _, err := time.LoadLocation(c.Warehouse.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.Alerts.CronSchedule == "" {
		return errors.New("REPLEN_ALERT_CRON must be provided")
	}

	if c.WhatsApp.Enabled() {
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
		if c.Alerts.Recipient == "" {
			return errors.New("REPLEN_ALERT_RECIPIENT must be provided when WhatsApp is enabled")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}
