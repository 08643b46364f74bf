package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Address        string
	Port           int
	BaseURL        string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	TelegramToken  string
	TelegramChatID int64

	// Emails allowed on the admin routes.
	AdminEmails []string

	// Opportunity generation band, in percent.
	OpportunityMinPercent float64
	OpportunityMaxPercent float64
	// Seconds between feed refreshes.
	OpportunityInterval int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "7000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.New("invalid PORT value")
	}

	address := os.Getenv("ADDRESS")
	if address == "" {
		address = "0.0.0.0"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + portStr
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDatabase := os.Getenv("MONGO_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "zenith"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "default_jwt_secret"
	}

	telegramToken := os.Getenv("TELEGRAM_TOKEN")

	var adminEmails []string
	for _, email := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if email = strings.TrimSpace(email); email != "" {
			adminEmails = append(adminEmails, email)
		}
	}

	var telegramChatID int64
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		telegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, errors.New("invalid TELEGRAM_CHAT_ID value")
		}
	}

	minPercentStr := os.Getenv("OPPORTUNITY_MIN_PERCENT")
	if minPercentStr == "" {
		minPercentStr = "0.15"
	}
	minPercent, err := strconv.ParseFloat(minPercentStr, 64)
	if err != nil {
		return nil, errors.New("invalid OPPORTUNITY_MIN_PERCENT value")
	}

	maxPercentStr := os.Getenv("OPPORTUNITY_MAX_PERCENT")
	if maxPercentStr == "" {
		maxPercentStr = "0.60"
	}
	maxPercent, err := strconv.ParseFloat(maxPercentStr, 64)
	if err != nil {
		return nil, errors.New("invalid OPPORTUNITY_MAX_PERCENT value")
	}

	intervalStr := os.Getenv("OPPORTUNITY_INTERVAL")
	if intervalStr == "" {
		intervalStr = "15"
	}
	interval, err := strconv.Atoi(intervalStr)
	if err != nil {
		return nil, errors.New("invalid OPPORTUNITY_INTERVAL value")
	}

	return &Config{
		Address:               address,
		Port:                  port,
		BaseURL:               baseURL,
		MongoURI:              mongoURI,
		MongoDatabase:         mongoDatabase,
		JWTSecret:             jwtSecret,
		TelegramToken:         telegramToken,
		TelegramChatID:        telegramChatID,
		AdminEmails:           adminEmails,
		OpportunityMinPercent: minPercent,
		OpportunityMaxPercent: maxPercent,
		OpportunityInterval:   interval,
	}, nil
}
