package http

import (
	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/service"
	"github.com/MKhiriev/go-key/internal/utils"
)

type Handler struct {
	vault   *service.Handle
	auth    config.Server
	version string

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

func NewHandler(vault *service.Handle, auth config.Server, version string, logger *logger.Logger) *Handler {
	logger.Info().Str("location", vault.Location().String()).Msg("http handler created")
	return &Handler{
		vault:    vault,
		auth:     auth,
		version:  version,
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
