package report

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/healstats/internal/core/errors"
	"github.com/aevon-lab/healstats/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all report API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/encounters/:id/stats", s.HandleStats)
	r.GET("/v1/encounters/:id/details/:detail_id", s.HandleDetails)
	r.GET("/v1/encounters/:id/total", s.HandleTotal)
	r.GET("/v1/encounters/:id/groups", s.HandleGroups)
}

type encounterURI struct {
	ID string `uri:"id" binding:"required"`
}

type detailURI struct {
	ID       string `uri:"id" binding:"required"`
	DetailID string `uri:"detail_id" binding:"required"`
}

// HandleStats handles GET /v1/encounters/:id/stats
func (s *Service) HandleStats(c *gin.Context) {
	var uri encounterURI
	q, ok := bindRequest(c, &uri)
	if !ok {
		return
	}

	resp, err := s.Stats(c.Request.Context(), uri.ID, q)
	respond(c, resp, err)
}

// HandleDetails handles GET /v1/encounters/:id/details/:detail_id
func (s *Service) HandleDetails(c *gin.Context) {
	var uri detailURI
	q, ok := bindRequest(c, &uri)
	if !ok {
		return
	}

	resp, err := s.Details(c.Request.Context(), uri.ID, uri.DetailID, q)
	respond(c, resp, err)
}

// HandleTotal handles GET /v1/encounters/:id/total
func (s *Service) HandleTotal(c *gin.Context) {
	var uri encounterURI
	q, ok := bindRequest(c, &uri)
	if !ok {
		return
	}

	resp, err := s.Total(c.Request.Context(), uri.ID, q)
	respond(c, resp, err)
}

// HandleGroups handles GET /v1/encounters/:id/groups
func (s *Service) HandleGroups(c *gin.Context) {
	var uri encounterURI
	q, ok := bindRequest(c, &uri)
	if !ok {
		return
	}

	resp, err := s.Groups(c.Request.Context(), uri.ID, q)
	respond(c, resp, err)
}

// bindRequest binds path and query parameters, writing a 400 on failure.
func bindRequest(c *gin.Context, uri interface{}) (ViewQuery, bool) {
	var q ViewQuery

	if err := c.ShouldBindUri(uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return q, false
	}

	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return q, false
	}

	return q, true
}

func respond(c *gin.Context, resp interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid report query",
			Details:   err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpEncounterNotFoundError,
			Message:   "Encounter not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to build report",
			Details:   err.Error(),
		})
	}
}
