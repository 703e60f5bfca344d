package http

import (
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	// hasher is nil when the server runs without a hash key; document
	// uploads are then accepted without an integrity check.
	hasher *utils.Hasher

	logger *logger.Logger
}

func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}

	logger.Info().Bool("hash_check", h.hasher != nil).Msg("http handler created")
	return h
}
