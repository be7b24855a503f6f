package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoh/spa-desk/internal/config"
	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/repository/memory"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
	"github.com/minatoh/spa-desk/pkg/logger"
	"github.com/minatoh/spa-desk/pkg/messaging"
	"github.com/minatoh/spa-desk/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("queue_test")

func newTestService(t *testing.T, cfg config.FrontDeskConfig) (*Service, *memory.Store, *model.Service) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store.Clients(), store.Services(), messaging.NewNopPublisher(), testMetrics, logger.NewLogger(nil), cfg)

	catalogEntry := &model.Service{
		Name:     "Swedish Massage",
		Category: model.ServiceCategoryMassage,
		Duration: 60,
		Price:    80,
	}
	require.NoError(t, store.Services().Create(context.Background(), catalogEntry))
	return svc, store, catalogEntry
}

func defaultConfig() config.FrontDeskConfig {
	return config.FrontDeskConfig{
		EscortBufferMinutes:  12,
		LateThresholdMinutes: 15,
		AutoPromoteLate:      false,
		MaxQueueSize:         20,
	}
}

func checkInNamed(t *testing.T, svc *Service, serviceID uuid.UUID, name string, now time.Time) *model.Client {
	t.Helper()
	client, err := svc.CheckIn(context.Background(), &model.CheckInRequest{
		Name:      name,
		ServiceID: serviceID.String(),
	}, now)
	require.NoError(t, err)
	return client
}

func entryNames(entries []model.QueueEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Client.Name)
	}
	return names
}

func TestIsLate(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	threshold := 15 * time.Minute

	walkIn := &model.Client{WaitingSince: now.Add(-time.Hour)}
	assert.False(t, IsLate(walkIn, now, threshold))

	onTime := now.Add(-10 * time.Minute)
	assert.False(t, IsLate(&model.Client{ScheduledTime: &onTime}, now, threshold))

	exactly := now.Add(-15 * time.Minute)
	assert.False(t, IsLate(&model.Client{ScheduledTime: &exactly}, now, threshold))

	late := now.Add(-16 * time.Minute)
	assert.True(t, IsLate(&model.Client{ScheduledTime: &late}, now, threshold))

	future := now.Add(30 * time.Minute)
	assert.False(t, IsLate(&model.Client{ScheduledTime: &future}, now, threshold))
}

func TestWaitTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, WaitTime(&model.Client{WaitingSince: now}, now))
	assert.Equal(t, 0, WaitTime(&model.Client{WaitingSince: now.Add(-59 * time.Second)}, now))
	assert.Equal(t, 25, WaitTime(&model.Client{WaitingSince: now.Add(-25 * time.Minute)}, now))
	// A clock that moved backwards never yields a negative wait.
	assert.Equal(t, 0, WaitTime(&model.Client{WaitingSince: now.Add(time.Minute)}, now))
}

func TestCheckInWalkIn(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	client := checkInNamed(t, svc, catalogEntry.ID, "Walk-in", now)

	assert.Equal(t, model.IntakeWalkIn, client.Type)
	assert.Equal(t, model.ClientStatusWaiting, client.Status)
	assert.Equal(t, 1, client.Priority)
	assert.Equal(t, now, client.WaitingSince)
	assert.Equal(t, model.PreferAny, client.PreferredGender)
	assert.Equal(t, catalogEntry.ID, client.Service.ID)
	assert.Equal(t, 80.0, client.Service.Price)
}

func TestCheckInBooking(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	scheduled := now.Add(-5 * time.Minute)

	client, err := svc.CheckIn(context.Background(), &model.CheckInRequest{
		Name:          "Booked",
		ServiceID:     catalogEntry.ID.String(),
		ScheduledTime: &scheduled,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, model.IntakeBooking, client.Type)
	require.NotNil(t, client.ScheduledTime)
	assert.Equal(t, scheduled, *client.ScheduledTime)
}

func TestCheckInUnknownService(t *testing.T) {
	svc, _, _ := newTestService(t, defaultConfig())
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	_, err := svc.CheckIn(context.Background(), &model.CheckInRequest{
		Name:      "Walk-in",
		ServiceID: uuid.New().String(),
	}, now)

	assert.Equal(t, apperrors.ErrInvalidService, apperrors.CodeOf(err))
}

func TestCheckInSnapshotsService(t *testing.T) {
	svc, store, catalogEntry := newTestService(t, defaultConfig())
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	before := checkInNamed(t, svc, catalogEntry.ID, "Before", now)

	catalogEntry.Price = 95
	require.NoError(t, store.Services().Update(ctx, catalogEntry))

	after := checkInNamed(t, svc, catalogEntry.ID, "After", now.Add(time.Minute))

	// Catalog edits only affect intakes that happen after the edit.
	assert.Equal(t, 80.0, before.Service.Price)
	assert.Equal(t, 95.0, after.Service.Price)
}

func TestCheckInQueueFull(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxQueueSize = 3
	svc, _, catalogEntry := newTestService(t, cfg)
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		checkInNamed(t, svc, catalogEntry.ID, fmt.Sprintf("c%d", i+1), now)
	}

	_, err := svc.CheckIn(context.Background(), &model.CheckInRequest{
		Name:      "c4",
		ServiceID: catalogEntry.ID.String(),
	}, now)

	assert.Equal(t, apperrors.ErrQueueFull, apperrors.CodeOf(err))
}

func TestEntriesContiguousPositions(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "c1", now.Add(-30*time.Minute))
	checkInNamed(t, svc, catalogEntry.ID, "c2", now.Add(-20*time.Minute))
	checkInNamed(t, svc, catalogEntry.ID, "c3", now.Add(-10*time.Minute))

	entries, err := svc.Entries(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, []string{"c1", "c2", "c3"}, entryNames(entries))
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Position)
	}
	assert.Equal(t, 30, entries[0].WaitTime)
	assert.Equal(t, 20, entries[1].WaitTime)
	assert.Equal(t, 10, entries[2].WaitTime)
}

func TestCheckInAutoPromotesLateBooking(t *testing.T) {
	cfg := defaultConfig()
	cfg.AutoPromoteLate = true
	svc, _, catalogEntry := newTestService(t, cfg)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "walkin1", now.Add(-30*time.Minute))
	checkInNamed(t, svc, catalogEntry.ID, "walkin2", now.Add(-20*time.Minute))

	scheduled := now.Add(-20 * time.Minute)
	late, err := svc.CheckIn(ctx, &model.CheckInRequest{
		Name:          "late-booking",
		ServiceID:     catalogEntry.ID.String(),
		ScheduledTime: &scheduled,
	}, now.Add(-2*time.Minute))
	require.NoError(t, err)

	// The late booking jumps the walk-ins at check-in; walk-ins keep their
	// order.
	assert.Equal(t, 1, late.Priority)

	entries, err := svc.Entries(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"late-booking", "walkin1", "walkin2"}, entryNames(entries))
	assert.True(t, entries[0].IsLate)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Position)
	}
}

func TestEntriesNeverReordersQueue(t *testing.T) {
	cfg := defaultConfig()
	cfg.AutoPromoteLate = true
	svc, store, catalogEntry := newTestService(t, cfg)
	ctx := context.Background()
	checkedIn := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "walkin", checkedIn)

	// On time at check-in, late twenty minutes later.
	scheduled := checkedIn
	_, err := svc.CheckIn(ctx, &model.CheckInRequest{
		Name:          "booking",
		ServiceID:     catalogEntry.ID.String(),
		ScheduledTime: &scheduled,
	}, checkedIn)
	require.NoError(t, err)

	now := checkedIn.Add(20 * time.Minute)
	entries, err := svc.Entries(ctx, now)
	require.NoError(t, err)

	// Lateness is derived on read; the stored order stands until a
	// state-changing operation moves it.
	assert.Equal(t, []string{"walkin", "booking"}, entryNames(entries))
	assert.True(t, entries[1].IsLate)

	waiting, err := store.Clients().ListWaiting(ctx)
	require.NoError(t, err)
	require.Len(t, waiting, 2)
	assert.Equal(t, "walkin", waiting[0].Name)
	assert.Equal(t, 1, waiting[0].Priority)
	assert.Equal(t, 2, waiting[1].Priority)
}

func TestPromoteLatePersistsNewOrder(t *testing.T) {
	cfg := defaultConfig()
	cfg.AutoPromoteLate = true
	svc, _, catalogEntry := newTestService(t, cfg)
	ctx := context.Background()
	checkedIn := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "walkin", checkedIn)

	scheduled := checkedIn
	_, err := svc.CheckIn(ctx, &model.CheckInRequest{
		Name:          "booking",
		ServiceID:     catalogEntry.ID.String(),
		ScheduledTime: &scheduled,
	}, checkedIn)
	require.NoError(t, err)

	now := checkedIn.Add(20 * time.Minute)
	entries, err := svc.PromoteLate(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"booking", "walkin"}, entryNames(entries))

	again, err := svc.Entries(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"booking", "walkin"}, entryNames(again))
	for i, entry := range again {
		assert.Equal(t, i+1, entry.Position)
	}
}

func TestEntriesNoPromotionWhenDisabled(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "walkin", now.Add(-30*time.Minute))

	scheduled := now.Add(-20 * time.Minute)
	_, err := svc.CheckIn(ctx, &model.CheckInRequest{
		Name:          "late-booking",
		ServiceID:     catalogEntry.ID.String(),
		ScheduledTime: &scheduled,
	}, now.Add(-2*time.Minute))
	require.NoError(t, err)

	entries, err := svc.Entries(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"walkin", "late-booking"}, entryNames(entries))
	assert.True(t, entries[1].IsLate)
}

func TestReorder(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "c1", now)
	checkInNamed(t, svc, catalogEntry.ID, "c2", now)
	c3 := checkInNamed(t, svc, catalogEntry.ID, "c3", now)

	require.NoError(t, svc.Reorder(ctx, c3.ID, 1))

	entries, err := svc.Entries(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c1", "c2"}, entryNames(entries))
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Position)
	}
}

func TestReorderClampsPosition(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	c1 := checkInNamed(t, svc, catalogEntry.ID, "c1", now)
	checkInNamed(t, svc, catalogEntry.ID, "c2", now)

	require.NoError(t, svc.Reorder(ctx, c1.ID, 99))

	entries, err := svc.Entries(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, entryNames(entries))
}

func TestReorderUnknownClient(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	checkInNamed(t, svc, catalogEntry.ID, "c1", now)

	err := svc.Reorder(context.Background(), uuid.New(), 1)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestDequeueClosesGap(t *testing.T) {
	svc, store, catalogEntry := newTestService(t, defaultConfig())
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	checkInNamed(t, svc, catalogEntry.ID, "c1", now)
	c2 := checkInNamed(t, svc, catalogEntry.ID, "c2", now)
	checkInNamed(t, svc, catalogEntry.ID, "c3", now)

	// Callers change the client's status before dequeueing.
	c2.Status = model.ClientStatusNoShow
	require.NoError(t, store.Clients().Update(ctx, c2))

	require.NoError(t, svc.Dequeue(ctx, c2.ID, now))

	entries, err := svc.Entries(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c3"}, entryNames(entries))
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)
}

func TestDequeueUnknownClient(t *testing.T) {
	svc, _, catalogEntry := newTestService(t, defaultConfig())
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	checkInNamed(t, svc, catalogEntry.ID, "c1", now)

	err := svc.Dequeue(context.Background(), uuid.New(), now)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}
