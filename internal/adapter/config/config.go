package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Razorpay *Razorpay
	Cashfree *Cashfree
	Email    *Email
	Payments *Payments
	Files    *Files
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Razorpay struct {
	KeyID         string `env:"RAZORPAY_KEY_ID"`
	SecretKey     string `env:"RAZORPAY_SECRET_KEY"`
	BaseURL       string `env:"RAZORPAY_API_URL" envDefault:"https://api.razorpay.com/v1"`
	WebhookSecret string `env:"RAZORPAY_WEBHOOK_SECRET"`
}

type Cashfree struct {
	AppID         string `env:"CASHFREE_APP_ID"`
	SecretKey     string `env:"CASHFREE_SECRET_KEY"`
	BaseURL       string `env:"CASHFREE_API_URL" envDefault:"https://api.cashfree.com/pg"`
	WebhookSecret string `env:"CASHFREE_WEBHOOK_SECRET"`
}

type Email struct {
	Host string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	Port int    `env:"EMAIL_PORT" envDefault:"587"`
	User string `env:"EMAIL_USER"`
	Pass string `env:"EMAIL_PASS"`
	From string `env:"EMAIL_FROM"`
}

type Payments struct {
	Provider string `env:"PAYMENT_PROVIDER" envDefault:"razorpay"`
	Currency string `env:"PAYMENT_CURRENCY" envDefault:"INR"`
}

type Files struct {
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var razorpay Razorpay
	var cashfree Cashfree
	var email Email
	var payments Payments
	var files Files
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&razorpay)
	if err != nil {
		return nil, fmt.Errorf("error parsing razorpay config: %w", err)
	}
	err = env.Parse(&cashfree)
	if err != nil {
		return nil, fmt.Errorf("error parsing cashfree config: %w", err)
	}
	err = env.Parse(&email)
	if err != nil {
		return nil, fmt.Errorf("error parsing email config: %w", err)
	}
	err = env.Parse(&payments)
	if err != nil {
		return nil, fmt.Errorf("error parsing payments config: %w", err)
	}
	err = env.Parse(&files)
	if err != nil {
		return nil, fmt.Errorf("error parsing files config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Razorpay: &razorpay,
		Cashfree: &cashfree,
		Email:    &email,
		Payments: &payments,
		Files:    &files,
		App:      &app,
	}

	return &config, nil
}
