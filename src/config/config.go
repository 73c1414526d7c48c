package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"Backend-ShiftFilter/src/services/timeclock"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config ค่าตั้งค่าทั้งหมดของระบบ
type Config struct {
	Server struct {
		Port           string `yaml:"port"`
		AllowedOrigins string `yaml:"allowed_origins"`
		BodyLimitMB    int    `yaml:"body_limit_mb"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`

	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`

	Logging struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"logging"`

	Timeclock struct {
		AnchorLabel       string  `yaml:"anchor_label"`
		MaxHeaderScanRows int     `yaml:"max_header_scan_rows"`
		FallbackHeaderRow int     `yaml:"fallback_header_row"`
		ShiftGapHours     float64 `yaml:"shift_gap_hours"`
		OutputFilename    string  `yaml:"output_filename"`
	} `yaml:"timeclock"`
}

// Defaults คืนค่าเริ่มต้นที่ใช้ได้ทันทีในเครื่อง dev
func Defaults() *Config {
	var cfg Config
	cfg.Server.Port = "8888"
	cfg.Server.AllowedOrigins = "*"
	cfg.Server.BodyLimitMB = 32
	cfg.Mongo.Database = "ShiftFilterDB"
	cfg.JWT.Secret = "your_secret_key"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Logging.Level = "info"

	opts := timeclock.DefaultOptions()
	cfg.Timeclock.AnchorLabel = opts.AnchorLabel
	cfg.Timeclock.MaxHeaderScanRows = opts.MaxHeaderScanRows
	cfg.Timeclock.FallbackHeaderRow = opts.FallbackHeaderRow
	cfg.Timeclock.ShiftGapHours = opts.ShiftGapHours
	cfg.Timeclock.OutputFilename = "filtered_shift_data.xlsx"
	return &cfg
}

// Load reads .env, then the optional YAML file named by CONFIG_FILE
// (default config.yaml), then environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	cfg := Defaults()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// ไม่มีไฟล์ config ใช้ค่า default + ENV
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == Defaults().JWT.Secret {
		log.Println("⚠️ Warning: JWT_SECRET not set, using the development secret")
	}
	return cfg, nil
}

// Parse decodes YAML into cfg after replacing ${VAR} placeholders with the
// matching environment variables. Unset variables expand to "" and the
// setting falls back to its default.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	fillEmpty(cfg)
	return nil
}

// fillEmpty คืนค่า default ให้ field ที่ถูกเขียนทับด้วยค่าว่าง
func fillEmpty(cfg *Config) {
	def := Defaults()
	for _, f := range []struct{ dst, def *string }{
		{&cfg.Server.Port, &def.Server.Port},
		{&cfg.Server.AllowedOrigins, &def.Server.AllowedOrigins},
		{&cfg.Mongo.Database, &def.Mongo.Database},
		{&cfg.JWT.Secret, &def.JWT.Secret},
		{&cfg.Logging.Level, &def.Logging.Level},
		{&cfg.Timeclock.AnchorLabel, &def.Timeclock.AnchorLabel},
		{&cfg.Timeclock.OutputFilename, &def.Timeclock.OutputFilename},
	} {
		if strings.TrimSpace(*f.dst) == "" {
			*f.dst = *f.def
		}
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Port, "APP_URI")
	setString(&cfg.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DB")
	setString(&cfg.Redis.Addr, "REDIS_URI")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Timeclock.AnchorLabel, "HEADER_ANCHOR")
	setString(&cfg.Timeclock.OutputFilename, "OUTPUT_FILENAME")

	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL value: %w", err)
		}
		cfg.JWT.TTL = d
	}
	if v := os.Getenv("HEADER_FALLBACK_ROW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HEADER_FALLBACK_ROW value: %w", err)
		}
		cfg.Timeclock.FallbackHeaderRow = n
	}
	if v := os.Getenv("SHIFT_GAP_HOURS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SHIFT_GAP_HOURS value: %w", err)
		}
		cfg.Timeclock.ShiftGapHours = f
	}
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		cfg.Logging.Development = strings.EqualFold(v, "true") || v == "1"
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// TimeclockOptions แปลงค่า config เป็น options ของ service timeclock
func (c *Config) TimeclockOptions() timeclock.Options {
	return timeclock.Options{
		AnchorLabel:       c.Timeclock.AnchorLabel,
		MaxHeaderScanRows: c.Timeclock.MaxHeaderScanRows,
		FallbackHeaderRow: c.Timeclock.FallbackHeaderRow,
		ShiftGapHours:     c.Timeclock.ShiftGapHours,
	}
}
