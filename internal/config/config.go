package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Salary     SalaryConfig
	Face       FaceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// AttendanceConfig holds the default work window and geofence. Values
// here are fallbacks; an active work period overrides the window per
// employee.
type AttendanceConfig struct {
	WorkStart            string
	WorkEnd              string
	LateToleranceMinutes int
	EarlyLeaveMinutes    int
	OfficeLatitude       float64
	OfficeLongitude      float64
	OfficeRadiusMeters   float64
	StandardWorkHours    int
	PhotoDir             string
}

// SalaryConfig holds payroll calculation rates.
type SalaryConfig struct {
	OvertimeRatePerHour string
	TaxRate             string
	DefaultBasicSalary  string
}

// FaceConfig holds the external face recognition service settings.
type FaceConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "absensi"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	lateTolerance, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES: %w", err)
	}
	earlyLeave, err := strconv.Atoi(getEnv("EARLY_CHECKOUT_THRESHOLD_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_CHECKOUT_THRESHOLD_MINUTES: %w", err)
	}
	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "-6.2088"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "106.8456"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS: %w", err)
	}
	standardHours, err := strconv.Atoi(getEnv("OVERTIME_THRESHOLD_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_THRESHOLD_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WorkStart:            getEnv("WORK_START_TIME", "08:00"),
		WorkEnd:              getEnv("WORK_END_TIME", "17:00"),
		LateToleranceMinutes: lateTolerance,
		EarlyLeaveMinutes:    earlyLeave,
		OfficeLatitude:       officeLat,
		OfficeLongitude:      officeLon,
		OfficeRadiusMeters:   officeRadius,
		StandardWorkHours:    standardHours,
		PhotoDir:             getEnv("ATTENDANCE_PHOTO_DIR", "storage/attendance"),
	}

	// Salary configuration
	config.Salary = SalaryConfig{
		OvertimeRatePerHour: getEnv("OVERTIME_RATE_PER_HOUR", "25000"),
		TaxRate:             getEnv("TAX_RATE", "0.05"),
		DefaultBasicSalary:  getEnv("DEFAULT_BASIC_SALARY", "5000000"),
	}

	// Face recognition service configuration
	faceTimeout, err := time.ParseDuration(getEnv("FACE_SERVICE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_SERVICE_TIMEOUT: %w", err)
	}
	config.Face = FaceConfig{
		BaseURL: getEnv("FACE_SERVICE_URL", "http://localhost:5000"),
		Timeout: faceTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Face.BaseURL == "" {
		return fmt.Errorf("FACE_SERVICE_URL is required")
	}
	if c.Attendance.OfficeRadiusMeters <= 0 {
		return fmt.Errorf("OFFICE_RADIUS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the configured application timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
