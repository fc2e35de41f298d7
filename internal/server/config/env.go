package config

import "os"

// parseEnv overlays configuration from the process environment. Variable
// names follow the ones the API has always documented:
//
//	PORT          — HTTP port (turned into a ":<port>" bind address)
//	BASE_URL      — public base URL for verification links
//	DATABASE_URL  — PostgreSQL DSN
//	SECRET_KEY    — JWT signing secret
//	APP_ENV       — "production" enables strict validation
//	MJ_APIKEY_PUBLIC / MJ_APIKEY_PRIVATE — mail provider credentials
//	MAIL_SENDER_EMAIL / MAIL_SENDER_NAME — From identity
//
// Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddr = ":" + v
	}
	if v, ok := os.LookupEnv("BASE_URL"); ok && v != "" {
		config.BaseURL = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Production = v == "production"
	}
	if v, ok := os.LookupEnv("MJ_APIKEY_PUBLIC"); ok && v != "" {
		config.MailjetAPIKey = v
	}
	if v, ok := os.LookupEnv("MJ_APIKEY_PRIVATE"); ok && v != "" {
		config.MailjetAPISecret = v
	}
	if v, ok := os.LookupEnv("MAIL_SENDER_EMAIL"); ok && v != "" {
		config.MailSenderEmail = v
	}
	if v, ok := os.LookupEnv("MAIL_SENDER_NAME"); ok && v != "" {
		config.MailSenderName = v
	}
}
