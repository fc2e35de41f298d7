package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/miniblog/internal/flagx"
	"github.com/dmitrijs2005/miniblog/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which parses both string
// values such as "1h" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	BaseURL               string         `json:"base_url"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	Production            bool           `json:"production"`
	MailjetAPIKey         string         `json:"mailjet_api_key"`
	MailjetAPISecret      string         `json:"mailjet_api_secret"`
	MailSenderEmail       string         `json:"mail_sender_email"`
	MailSenderName        string         `json:"mail_sender_name"`
	MailQueueSize         int            `json:"mail_queue_size"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags;
// when neither is set, no JSON file is loaded. An unreadable or invalid
// file panics: a half-applied config file is worse than no server.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.Production {
		config.Production = true
	}
	if c.MailjetAPIKey != "" {
		config.MailjetAPIKey = c.MailjetAPIKey
	}
	if c.MailjetAPISecret != "" {
		config.MailjetAPISecret = c.MailjetAPISecret
	}
	if c.MailSenderEmail != "" {
		config.MailSenderEmail = c.MailSenderEmail
	}
	if c.MailSenderName != "" {
		config.MailSenderName = c.MailSenderName
	}
	if c.MailQueueSize != 0 {
		config.MailQueueSize = c.MailQueueSize
	}
}
