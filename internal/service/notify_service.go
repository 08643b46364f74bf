package service

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
)

// NotifyService alerts the platform operators about payout requests. All
// calls are best effort; a failed alert never fails the request itself.
type NotifyService interface {
	WithdrawalRequested(withdrawal *models.Withdrawal) error
	RescueRequested(rescue *models.InvestmentRescue) error
}

type telegramNotifyService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifyService(botToken string, chatID int64) (NotifyService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, errors.New("failed to initialize Telegram bot: " + err.Error())
	}

	return &telegramNotifyService{bot: bot, chatID: chatID}, nil
}

func (s *telegramNotifyService) WithdrawalRequested(withdrawal *models.Withdrawal) error {
	text := fmt.Sprintf(
		"Withdrawal requested\nUser: %s\nMethod: %s\nAmount: $%.2f\nFee: $%.2f",
		withdrawal.Email, withdrawal.Method, withdrawal.Amount, withdrawal.Fee,
	)
	return s.send(text)
}

func (s *telegramNotifyService) RescueRequested(rescue *models.InvestmentRescue) error {
	text := fmt.Sprintf(
		"Investment rescue requested\nUser: %s\nAmount: $%.2f\nFee: $%.2f\nReceives: $%.2f",
		rescue.Email, rescue.AmountRescued, rescue.Fee, rescue.AmountReceived,
	)
	return s.send(text)
}

func (s *telegramNotifyService) send(text string) error {
	if s.chatID == 0 {
		return errors.New("invalid chat ID")
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		return errors.New("failed to send Telegram message: " + err.Error())
	}
	return nil
}

// noopNotifyService is used when no Telegram token is configured.
type noopNotifyService struct{}

func NewNoopNotifyService() NotifyService {
	return &noopNotifyService{}
}

func (s *noopNotifyService) WithdrawalRequested(*models.Withdrawal) error   { return nil }
func (s *noopNotifyService) RescueRequested(*models.InvestmentRescue) error { return nil }
