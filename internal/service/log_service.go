package service

import (
	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/repository"
)

type LogService interface {
	LogAction(email, action, description, ipAddress string, metadata map[string]interface{}) error
	GetAllLogs(page, limit int) ([]*models.LogEntry, error)
	GetLogsByEmail(email string, page, limit int) ([]*models.LogEntry, error)
}

type logService struct {
	logRepo repository.LogRepository
}

func NewLogService(logRepo repository.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

func (s *logService) LogAction(email, action, description, ipAddress string, metadata map[string]interface{}) error {
	entry := &models.LogEntry{
		Email:       email,
		Action:      action,
		Description: description,
		IPAddress:   ipAddress,
		Metadata:    metadata,
	}
	return s.logRepo.SaveLog(entry)
}

func (s *logService) GetAllLogs(page, limit int) ([]*models.LogEntry, error) {
	return s.logRepo.GetAllLogs(page, limit)
}

func (s *logService) GetLogsByEmail(email string, page, limit int) ([]*models.LogEntry, error) {
	return s.logRepo.GetLogsByEmail(email, page, limit)
}
