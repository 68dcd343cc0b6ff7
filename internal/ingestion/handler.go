package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/healstats/internal/api/v1"
	httperr "github.com/aevon-lab/healstats/internal/core/errors"
	"github.com/aevon-lab/healstats/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed     = "Failed to read request body"
	msgInvalidJSON        = "Invalid JSON body"
	msgPersistFailed      = "Failed to persist encounter"
	msgDuplicateEncounter = "Encounter already exists"
	msgListFailed         = "Failed to list encounters"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

type listQuery struct {
	Limit int `form:"limit"`
}

// IngestHandler handles HTTP POST requests carrying one encounter.
func (s *Service) IngestHandler(c *gin.Context) {
	encounter, payloadSize, err := s.parseEncounter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := validateEncounter(encounter); err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Received encounter",
		"encounter_id", encounter.ID,
		"skills", len(encounter.Skills),
		"agents", len(encounter.Agents),
		"payload_size", payloadSize)

	if err := s.persistEncounter(c.Request.Context(), encounter); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, encounter.Summary())
}

// ListEncountersHandler handles GET /v1/encounters?limit=N.
func (s *Service) ListEncountersHandler(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil || q.Limit < 0 {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    "limit must be a non-negative integer",
		})
		return
	}

	limit := q.Limit
	if limit == 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}

	summaries, err := s.store.ListEncounters(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Failed to list encounters", "error", err, "limit", limit)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgListFailed,
		})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// parseEncounter reads the raw request body and binds it into an Encounter.
// Returns the parsed encounter and the raw payload size (used for structured logging upstream).
func (s *Service) parseEncounter(c *gin.Context) (*v1.Encounter, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var encounter v1.Encounter
	if err := c.ShouldBindJSON(&encounter); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	encounter.IngestedAt = time.Now().UTC()
	if encounter.RecordedAt.IsZero() {
		encounter.RecordedAt = encounter.IngestedAt
	}
	return &encounter, len(bodyBytes), nil
}

// validateEncounter checks document consistency and assigns an id when the client sent none.
func validateEncounter(encounter *v1.Encounter) *ingestionError {
	if err := encounter.Validate(); err != nil {
		slog.Warn("Encounter validation failed", "error", err, "encounter_id", encounter.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}
	encounter.AssignID()
	return nil
}

// persistEncounter saves the encounter to the backing store.
func (s *Service) persistEncounter(ctx context.Context, encounter *v1.Encounter) *ingestionError {
	if err := s.store.SaveEncounter(ctx, encounter); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate encounter rejected", "encounter_id", encounter.ID)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateEncounterError,
				message:    msgDuplicateEncounter,
			}
		}

		slog.Error("Failed to persist encounter", "error", err, "encounter_id", encounter.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
