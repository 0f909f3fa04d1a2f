package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type StoreCredentials struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	TopicPrefix string
}

type Config struct {
	Address           string
	Port              int
	StoreDriver       string
	StoreCredentials  *StoreCredentials
	SQLitePath        string
	WhitelistURL      string
	SecurityGroupID   string
	LogLevel          string
	TrustProxyHeaders bool
	MQTT              MQTTConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "5000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.New("invalid PORT value")
	}

	address := os.Getenv("ADDRESS")
	if address == "" {
		address = "0.0.0.0"
	}

	driver := strings.ToLower(os.Getenv("STORE_DRIVER"))
	if driver == "" {
		driver = DriverMongo
	}
	switch driver {
	case DriverMongo, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER value %q", driver)
	}

	creds, err := loadCredentials()
	if err != nil {
		return nil, err
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "data/smartdns.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	trustProxy := false
	if v := os.Getenv("TRUST_PROXY_HEADERS"); v != "" {
		trustProxy, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid TRUST_PROXY_HEADERS value")
		}
	}

	mqttClientID := os.Getenv("MQTT_CLIENT_ID")
	if mqttClientID == "" {
		mqttClientID = "smartdns-api"
	}
	mqttPrefix := os.Getenv("MQTT_TOPIC_PREFIX")
	if mqttPrefix == "" {
		mqttPrefix = "smartdns"
	}

	return &Config{
		Address:           address,
		Port:              port,
		StoreDriver:       driver,
		StoreCredentials:  creds,
		SQLitePath:        sqlitePath,
		WhitelistURL:      os.Getenv("WHITELIST_URL"),
		SecurityGroupID:   os.Getenv("SECURITY_GROUP_ID"),
		LogLevel:          logLevel,
		TrustProxyHeaders: trustProxy,
		MQTT: MQTTConfig{
			Broker:      os.Getenv("MQTT_BROKER"),
			ClientID:    mqttClientID,
			TopicPrefix: mqttPrefix,
		},
	}, nil
}

// loadCredentials reads the STORE_CREDENTIALS JSON blob, falling back to
// MONGO_URI. It returns nil when neither is set.
func loadCredentials() (*StoreCredentials, error) {
	var creds StoreCredentials
	if blob := os.Getenv("STORE_CREDENTIALS"); blob != "" {
		if err := json.Unmarshal([]byte(blob), &creds); err != nil {
			return nil, fmt.Errorf("invalid STORE_CREDENTIALS value: %w", err)
		}
		if creds.URI == "" {
			return nil, errors.New("STORE_CREDENTIALS is missing uri")
		}
	} else if uri := os.Getenv("MONGO_URI"); uri != "" {
		creds.URI = uri
		creds.Database = os.Getenv("MONGO_DATABASE")
	} else {
		return nil, nil
	}

	if creds.Database == "" {
		creds.Database = "smartdns"
	}
	return &creds, nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
