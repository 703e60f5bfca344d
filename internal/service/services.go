package service

import (
	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
)

type Services struct {
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

func NewServices(documents store.DocumentStore, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		DocumentService: NewDocumentValidationService().Wrap(NewDocumentService(documents, logger)),
		AppInfoService:  appInfo,
	}, nil
}
