package config

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Market   MarketConfig   `json:"market"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type MarketConfig struct {
	// FeeAccount collects marketplace cuts and mint fees.
	FeeAccount string `json:"fee_account"`
	// WhitelistedMinters mint without paying the flat mint fee.
	WhitelistedMinters []string `json:"whitelisted_minters"`
	MetricsPort        int      `json:"metrics_port"`
	// TrendingRefreshSeconds controls how often the trending board is
	// rebuilt from the database. Zero disables the refresher.
	TrendingRefreshSeconds int `json:"trending_refresh_seconds"`
	TrendingLimit          int `json:"trending_limit"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if config.Market.FeeAccount == "" {
		return nil, errors.New("config: market.fee_account is required")
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Market.MetricsPort == 0 {
		c.Market.MetricsPort = 9090
	}
	if c.Market.TrendingLimit == 0 {
		c.Market.TrendingLimit = 10
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
