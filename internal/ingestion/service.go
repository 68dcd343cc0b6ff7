// Package ingestion accepts uploaded encounters and lists what has been stored.
package ingestion

import (
	"github.com/aevon-lab/healstats/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

type Service struct {
	store            storage.EncounterStore
	maxBodySizeBytes int
	maxListLimit     int
}

func NewService(repo storage.EncounterStore, maxBodySizeMB, maxListLimit int) *Service {
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	if maxListLimit <= 0 {
		maxListLimit = defaultListLimit
	}
	return &Service{
		store:            repo,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		maxListLimit:     maxListLimit,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/encounters", s.IngestHandler)
	r.GET("/v1/encounters", s.ListEncountersHandler)
}
