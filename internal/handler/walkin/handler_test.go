package walkin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoh/spa-desk/internal/config"
	queueHandler "github.com/minatoh/spa-desk/internal/handler/queue"
	"github.com/minatoh/spa-desk/internal/handler/walkin"
	"github.com/minatoh/spa-desk/internal/middleware"
	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/repository/memory"
	assignmentService "github.com/minatoh/spa-desk/internal/service/assignment"
	queueService "github.com/minatoh/spa-desk/internal/service/queue"
	"github.com/minatoh/spa-desk/pkg/logger"
	"github.com/minatoh/spa-desk/pkg/messaging"
	"github.com/minatoh/spa-desk/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("walkin_test")

type env struct {
	engine *gin.Engine
	store  *memory.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()

	cfg := config.FrontDeskConfig{
		EscortBufferMinutes:  12,
		LateThresholdMinutes: 15,
		MaxQueueSize:         20,
	}
	store := memory.NewStore()
	log := logger.NewLogger(nil)
	pub := messaging.NewNopPublisher()

	queueSvc := queueService.NewService(store.Clients(), store.Services(), pub, testMetrics, log, cfg)
	assignSvc := assignmentService.NewService(
		store.Therapists(), store.Clients(), store.Services(), queueSvc, pub, testMetrics, log, cfg)

	engine := gin.New()
	api := engine.Group("/api/v1")
	walkin.NewHandler(assignSvc, queueSvc).RegisterRoutes(api)
	queueHandler.NewHandler(queueSvc, assignSvc).RegisterRoutes(api)

	return &env{engine: engine, store: store}
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	rec     *httptest.ResponseRecorder
}

func (e *env) request(t *testing.T, method, path string, body interface{}) *response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)

	resp := &response{rec: rec}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp))
	return resp
}

func TestWalkInFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	service := &model.Service{Name: "Swedish Massage", Category: model.ServiceCategoryMassage, Duration: 60, Price: 80}
	require.NoError(t, e.store.Services().Create(ctx, service))

	therapist := &model.Therapist{
		Name:           "Sarah Chen",
		Gender:         model.GenderFemale,
		Status:         model.TherapistStatusAvailable,
		CommissionRate: 45,
	}
	therapist.ServiceIDs = append(therapist.ServiceIDs, service.ID)
	require.NoError(t, e.store.Therapists().Create(ctx, therapist))

	// Review candidates for the service.
	candResp := e.request(t, "GET", fmt.Sprintf("/api/v1/walkins/candidates?service_id=%s", service.ID), nil)
	assert.Equal(t, http.StatusOK, candResp.rec.Code)
	var list struct {
		Candidates       []map[string]interface{} `json:"candidates"`
		NoneAvailableNow bool                     `json:"none_available_now"`
	}
	require.NoError(t, json.Unmarshal(candResp.Data, &list))
	require.Len(t, list.Candidates, 1)
	assert.False(t, list.NoneAvailableNow)

	// Check the walk-in in.
	checkInResp := e.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"name":       "Walk-in",
		"service_id": service.ID.String(),
	})
	require.Equal(t, http.StatusCreated, checkInResp.rec.Code, checkInResp.Message)
	var client model.Client
	require.NoError(t, json.Unmarshal(checkInResp.Data, &client))
	assert.Equal(t, model.ClientStatusWaiting, client.Status)
	assert.Equal(t, 1, client.Priority)

	// The queue shows the new entry.
	queueResp := e.request(t, "GET", "/api/v1/queue", nil)
	assert.Equal(t, http.StatusOK, queueResp.rec.Code)
	var entries []model.QueueEntry
	require.NoError(t, json.Unmarshal(queueResp.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, client.ID, entries[0].ClientID)

	// Confirm the assignment.
	assignResp := e.request(t, "POST", fmt.Sprintf("/api/v1/walkins/%s/assign", client.ID), map[string]interface{}{
		"therapist_id": therapist.ID.String(),
	})
	require.Equal(t, http.StatusOK, assignResp.rec.Code, assignResp.Message)

	updated, err := e.store.Therapists().Get(ctx, therapist.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TherapistStatusBusy, updated.Status)

	// Queue is empty again.
	emptyResp := e.request(t, "GET", "/api/v1/queue", nil)
	var remaining []model.QueueEntry
	require.NoError(t, json.Unmarshal(emptyResp.Data, &remaining))
	assert.Empty(t, remaining)
}

func TestWalkInCheckInValidation(t *testing.T) {
	e := newEnv(t)

	resp := e.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"name": "No Service",
	})
	assert.Equal(t, http.StatusBadRequest, resp.rec.Code)

	resp = e.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"name":       "Bad Phone",
		"service_id": "9b5fae32-94d4-4438-9a25-d58d8b14e78d",
		"phone":      "not-a-phone",
	})
	assert.Equal(t, http.StatusBadRequest, resp.rec.Code)
}

func TestCandidatesWithoutServiceRanksWholeRoster(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	massage := &model.Service{Name: "Swedish Massage", Category: model.ServiceCategoryMassage, Duration: 60, Price: 80}
	require.NoError(t, e.store.Services().Create(ctx, massage))
	facial := &model.Service{Name: "Facial Treatment", Category: model.ServiceCategoryFacial, Duration: 45, Price: 75}
	require.NoError(t, e.store.Services().Create(ctx, facial))

	masseuse := &model.Therapist{Name: "Sarah Chen", Gender: model.GenderFemale, Status: model.TherapistStatusAvailable}
	masseuse.ServiceIDs = append(masseuse.ServiceIDs, massage.ID)
	require.NoError(t, e.store.Therapists().Create(ctx, masseuse))

	esthetician := &model.Therapist{Name: "Mia Ko", Gender: model.GenderFemale, Status: model.TherapistStatusAvailable}
	esthetician.ServiceIDs = append(esthetician.ServiceIDs, facial.ID)
	require.NoError(t, e.store.Therapists().Create(ctx, esthetician))

	resp := e.request(t, "GET", "/api/v1/walkins/candidates", nil)
	require.Equal(t, http.StatusOK, resp.rec.Code, resp.Message)

	var list struct {
		Candidates []map[string]interface{} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list.Candidates, 2)
}

func TestCandidatesUnknownServiceReturnsBadRequest(t *testing.T) {
	e := newEnv(t)

	resp := e.request(t, "GET", "/api/v1/walkins/candidates?service_id=9b5fae32-94d4-4438-9a25-d58d8b14e78d", nil)
	assert.Equal(t, http.StatusBadRequest, resp.rec.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestNoShowThroughQueue(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	service := &model.Service{Name: "Facial Treatment", Category: model.ServiceCategoryFacial, Duration: 45, Price: 75}
	require.NoError(t, e.store.Services().Create(ctx, service))

	checkInResp := e.request(t, "POST", "/api/v1/walkins", map[string]interface{}{
		"name":       "Ghost",
		"service_id": service.ID.String(),
	})
	require.Equal(t, http.StatusCreated, checkInResp.rec.Code)
	var client model.Client
	require.NoError(t, json.Unmarshal(checkInResp.Data, &client))

	noShowResp := e.request(t, "POST", fmt.Sprintf("/api/v1/queue/%s/no-show", client.ID), nil)
	assert.Equal(t, http.StatusOK, noShowResp.rec.Code)

	gone, err := e.store.Clients().Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClientStatusNoShow, gone.Status)
}
