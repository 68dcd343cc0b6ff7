package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "github.com/aevon-lab/healstats/internal/api/v1"
	httperr "github.com/aevon-lab/healstats/internal/core/errors"
	"github.com/aevon-lab/healstats/internal/core/storage"
	storagemocks "github.com/aevon-lab/healstats/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testEncounter() *v1.Encounter {
	return &v1.Encounter{
		Subgroup:          1,
		EnteredCombatTime: 1000,
		ExitedCombatTime:  11000,
		Skills: []v1.SkillStats{
			{ID: 5, Name: "Heal", Agents: []v1.AgentHealing{{ID: 1, TotalHealing: 100, Ticks: 2}}},
		},
		Agents: []v1.Agent{{ID: 1, Name: "Alice", Subgroup: 1}},
	}
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func postEncounter(r http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/encounters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestIngestHandler_Success(t *testing.T) {
	body, _ := json.Marshal(testEncounter())

	mockStore := storagemocks.NewEncounterStore(t)
	mockStore.EXPECT().
		SaveEncounter(mock.Anything, mock.MatchedBy(func(e *v1.Encounter) bool {
			_, err := uuid.Parse(e.ID)
			return err == nil && !e.IngestedAt.IsZero() && len(e.Skills) == 1
		})).
		Return(nil).
		Once()

	r := newTestRouter(NewService(mockStore, 1, 0))
	resp := postEncounter(r, body)

	require.Equal(t, http.StatusCreated, resp.Code)
	var summary v1.EncounterSummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	require.NotEmpty(t, summary.ID)
	require.Equal(t, 1, summary.SkillCount)
	require.Equal(t, 1, summary.AgentCount)
}

func TestIngestHandler_KeepsClientID(t *testing.T) {
	enc := testEncounter()
	enc.ID = "0d1b4e7c-8f3a-4d36-9f7b-2a4c9e51b7aa"
	body, _ := json.Marshal(enc)

	mockStore := storagemocks.NewEncounterStore(t)
	mockStore.EXPECT().
		SaveEncounter(mock.Anything, mock.MatchedBy(func(e *v1.Encounter) bool {
			return e.ID == enc.ID
		})).
		Return(nil).
		Once()

	resp := postEncounter(newTestRouter(NewService(mockStore, 1, 0)), body)
	require.Equal(t, http.StatusCreated, resp.Code)
}

func TestIngestHandler_InvalidJSON(t *testing.T) {
	mockStore := storagemocks.NewEncounterStore(t)
	resp := postEncounter(newTestRouter(NewService(mockStore, 1, 0)), []byte("not json"))

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestIngestHandler_ValidationFailure(t *testing.T) {
	enc := testEncounter()
	enc.EnteredCombatTime = 0
	body, _ := json.Marshal(enc)

	mockStore := storagemocks.NewEncounterStore(t)
	resp := postEncounter(newTestRouter(NewService(mockStore, 1, 0)), body)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
	require.Contains(t, errResp.Message, "entered_combat_time")
}

func TestIngestHandler_DuplicateEncounter(t *testing.T) {
	body, _ := json.Marshal(testEncounter())

	mockStore := storagemocks.NewEncounterStore(t)
	mockStore.EXPECT().
		SaveEncounter(mock.Anything, mock.Anything).
		Return(storage.ErrDuplicate).
		Once()

	resp := postEncounter(newTestRouter(NewService(mockStore, 1, 0)), body)

	require.Equal(t, http.StatusConflict, resp.Code)

	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpDuplicateEncounterError, errResp.ErrorType)
}

func TestIngestHandler_StorageError(t *testing.T) {
	body, _ := json.Marshal(testEncounter())

	mockStore := storagemocks.NewEncounterStore(t)
	mockStore.EXPECT().
		SaveEncounter(mock.Anything, mock.Anything).
		Return(errors.New("database connection failed")).
		Once()

	resp := postEncounter(newTestRouter(NewService(mockStore, 1, 0)), body)

	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
}

func TestIngestHandler_BodySizeLimit(t *testing.T) {
	mockStore := storagemocks.NewEncounterStore(t)

	svc := NewService(mockStore, 0, 0) // 0 defaults to 1MB
	svc.maxBodySizeBytes = 10

	body, _ := json.Marshal(testEncounter())
	resp := postEncounter(newTestRouter(svc), body)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	var errResp httperr.ErrorResponse
	json.Unmarshal(resp.Body.Bytes(), &errResp)
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
	require.Contains(t, errResp.Message, "maximum allowed size")
}

func TestListEncountersHandler_Success(t *testing.T) {
	ingestedAt := time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC)

	mockStore := storagemocks.NewEncounterStore(t)
	mockStore.EXPECT().
		ListEncounters(mock.Anything, 2).
		Return([]v1.EncounterSummary{
			{ID: "enc-2", IngestedAt: ingestedAt.Add(time.Minute), SkillCount: 3, AgentCount: 5},
			{ID: "enc-1", IngestedAt: ingestedAt, SkillCount: 1, AgentCount: 1},
		}, nil).
		Once()

	r := newTestRouter(NewService(mockStore, 1, 10))
	req := httptest.NewRequest(http.MethodGet, "/v1/encounters?limit=2", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var summaries []v1.EncounterSummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	require.Equal(t, "enc-2", summaries[0].ID)
	require.Equal(t, 3, summaries[0].SkillCount)
}

func TestListEncountersHandler_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "missing limit uses max", query: "", want: 10},
		{name: "oversized limit is clamped", query: "?limit=1000", want: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := storagemocks.NewEncounterStore(t)
			mockStore.EXPECT().
				ListEncounters(mock.Anything, tc.want).
				Return([]v1.EncounterSummary{}, nil).
				Once()

			r := newTestRouter(NewService(mockStore, 1, 10))
			req := httptest.NewRequest(http.MethodGet, "/v1/encounters"+tc.query, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusOK, resp.Code)
		})
	}
}

func TestListEncountersHandler_InvalidQuery(t *testing.T) {
	for _, query := range []string{"?limit=abc", "?limit=-1"} {
		mockStore := storagemocks.NewEncounterStore(t)
		r := newTestRouter(NewService(mockStore, 1, 10))

		req := httptest.NewRequest(http.MethodGet, "/v1/encounters"+query, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusBadRequest, resp.Code, query)

		var errResp httperr.ErrorResponse
		json.Unmarshal(resp.Body.Bytes(), &errResp)
		require.Equal(t, httperr.HttpInvalidQueryError, errResp.ErrorType)
	}
}

func TestListEncountersHandler_StoreError(t *testing.T) {
	mockStore := storagemocks.NewEncounterStore(t)
	mockStore.EXPECT().
		ListEncounters(mock.Anything, 5).
		Return(nil, errors.New("db failure")).
		Once()

	r := newTestRouter(NewService(mockStore, 1, 10))
	req := httptest.NewRequest(http.MethodGet, "/v1/encounters?limit=5", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
}
