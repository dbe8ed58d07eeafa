package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	DBDSN    string
	LogFile  string
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "pawmart.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./pawmart.log"
	}
	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			smtpPort = n
		}
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "PawMart <no-reply@pawmart.test>"
	}

	cfg := Config{
		Port:     port,
		DBDSN:    dsn,
		LogFile:  logFile,
		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: from,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SMTP_HOST=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SMTPHost)
	return cfg
}
