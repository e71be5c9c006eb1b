package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	req  *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/salons/{salonId}/available-slots", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_SlotsSerializedAsUTCTimestamps(t *testing.T) {
	// Времена слотов в JSON - абсолютные метки RFC3339 в UTC
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:           date,
		SalonID:        1,
		ServiceID:      10,
		SchedulingMode: string(domain.SchedulingModeFixedGrid),
		TotalSlots:     2,
		AvailableCount: 1,
		Slots: []getAvailableSlots.Slot{
			{
				StartTime:       date.Add(9 * time.Hour),
				EndTime:         date.Add(10 * time.Hour),
				DurationMinutes: 60,
				Available:       true,
			},
			{
				StartTime:       date.Add(9*time.Hour + 30*time.Minute),
				EndTime:         date.Add(10*time.Hour + 30*time.Minute),
				DurationMinutes: 60,
				Available:       false,
			},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/available-slots?serviceId=10&date=2025-06-02", nil)
	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, 2, resp.TotalSlots)
	assert.Equal(t, 1, resp.AvailableCount)

	// Клиенту отдаются только доступные слоты
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2025-06-02T09:00:00Z", resp.Slots[0].StartTime)
	assert.Equal(t, "2025-06-02T10:00:00Z", resp.Slots[0].EndTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)

	// Времена парсятся обратно как RFC3339
	start, err := time.Parse(time.RFC3339, resp.Slots[0].StartTime)
	require.NoError(t, err)
	assert.Equal(t, date.Add(9*time.Hour), start)
}

func TestHandle_OptionalStaffIDPassedThrough(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		SalonID: 1,
		Slots:   []getAvailableSlots.Slot{},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/available-slots?serviceId=10&date=2025-06-02&staffId=5", nil)
	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req)
	require.NotNil(t, uc.req.StaffID)
	assert.Equal(t, int64(5), *uc.req.StaffID)
}

func TestHandle_InvalidStaffID(t *testing.T) {
	uc := &fakeUseCase{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/available-slots?serviceId=10&date=2025-06-02&staffId=abc", nil)
	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, msgInvalidStaffID, errResp.Message)

	// До use case запрос не дошел
	assert.Nil(t, uc.req)
}

func TestHandle_InvalidDate(t *testing.T) {
	uc := &fakeUseCase{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/available-slots?serviceId=10&date=02.06.2025", nil)
	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, msgInvalidDate, errResp.Message)
}
