package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Email        EmailConfig
	Storage      StorageConfig
	Verification VerificationConfig
	Company      CompanyConfig
}

type AppConfig struct {
	Name      string
	Port      string
	Debug     bool
	LogPath   string
	ClientURL string
}

type DatabaseConfig struct {
	URI  string
	Name string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type StorageConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type VerificationConfig struct {
	CodeExpiryHours int
	ResetExpiryMins int
	CodeLength      int
}

type CompanyConfig struct {
	Email string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_NAME", "bootcamp")
	viper.SetDefault("JWT_EXPIRY_HOURS", 72)
	viper.SetDefault("VERIFICATION_CODE_EXPIRY_HOURS", 24)
	viper.SetDefault("RESET_TOKEN_EXPIRY_MINUTES", 60)
	viper.SetDefault("VERIFICATION_CODE_LENGTH", 6)
	viper.SetDefault("STORAGE_FOLDER", "bootcamp")
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Port:      viper.GetString("PORT"),
			Debug:     viper.GetBool("DEBUG"),
			LogPath:   viper.GetString("LOG_PATH"),
			ClientURL: viper.GetString("CLIENT_URL"),
		},
		Database: DatabaseConfig{
			URI:  viper.GetString("MONGO_URI"),
			Name: viper.GetString("DB_NAME"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Storage: StorageConfig{
			CloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
			APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
			Folder:    viper.GetString("STORAGE_FOLDER"),
		},
		Verification: VerificationConfig{
			CodeExpiryHours: viper.GetInt("VERIFICATION_CODE_EXPIRY_HOURS"),
			ResetExpiryMins: viper.GetInt("RESET_TOKEN_EXPIRY_MINUTES"),
			CodeLength:      viper.GetInt("VERIFICATION_CODE_LENGTH"),
		},
		Company: CompanyConfig{
			Email: viper.GetString("COMPANY_EMAIL"),
		},
	}

	return config, nil
}
