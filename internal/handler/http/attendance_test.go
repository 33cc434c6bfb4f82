package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/domain/employee"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/jwt"
	"github.com/chapi1234/gammoda-attendance-go/internal/repository/memory"
	attendanceService "github.com/chapi1234/gammoda-attendance-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	router  http.Handler
	jwt     jwt.Service
	records *memory.RecordStore
}

func newTestServer(t *testing.T, rosterIDs ...string) *testServer {
	t.Helper()

	records := memory.NewRecordStore()
	aggregates := memory.NewAggregateStore()
	roster := memory.NewRosterStore()
	for _, id := range rosterIDs {
		roster.Put(employee.Employee{ID: id, Name: "Employee " + id, Active: true})
	}

	svc := attendanceService.NewAttendanceService(
		records, aggregates, roster, attendance.NewLatePolicy("09:00"), time.UTC)

	JWTService := jwt.NewJWTService(handlerTestSecret, "1h")
	handler := NewAttendanceHandler(svc, time.UTC)

	return &testServer{
		router:  NewRouter(JWTService, handler, "test"),
		jwt:     JWTService,
		records: records,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T, employeeID string, role jwt.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(employeeID, role)
	require.NoError(t, err)
	return token
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestCheckInEndpoint(t *testing.T) {
	s := newTestServer(t, "emp-1")
	token := s.token(t, "emp-1", jwt.RoleEmployee)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in",
		map[string]string{"time": "08:30", "location": "HQ"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var view attendance.View
	decodeData(t, rec, &view)
	assert.Equal(t, "emp-1", view.EmployeeID)
	assert.Equal(t, "present", view.Status)

	// Replay is rejected with a conflict.
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-in",
		map[string]string{"time": "08:45"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckInEndpoint_RequiresToken(t *testing.T) {
	s := newTestServer(t, "emp-1")

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckOutEndpoint_BeforeCheckIn(t *testing.T) {
	s := newTestServer(t, "emp-1")
	token := s.token(t, "emp-1", jwt.RoleEmployee)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-out",
		map[string]string{"time": "17:00"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListByDayEndpoint_HROnly(t *testing.T) {
	s := newTestServer(t, "emp-1", "emp-2")

	employeeToken := s.token(t, "emp-1", jwt.RoleEmployee)
	rec := s.do(t, http.MethodGet, "/api/v1/attendance/", nil, employeeToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	hrToken := s.token(t, "hr-1", jwt.RoleHR)
	rec = s.do(t, http.MethodGet, "/api/v1/attendance/", nil, hrToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp attendance.DayListResponse
	decodeData(t, rec, &resp)
	assert.Len(t, resp.Records, 2)
	assert.Equal(t, 2, resp.Stats.Absent)
}

func TestHRUpsertEndpoint(t *testing.T) {
	s := newTestServer(t, "emp-1")
	hrToken := s.token(t, "hr-1", jwt.RoleHR)

	today := clock.DayKeyOf(time.Now(), time.UTC).Format(clock.DayFormat)
	path := fmt.Sprintf("/api/v1/attendance/emp-1/%s", today)

	rec := s.do(t, http.MethodPut, path, map[string]string{"status": "leave"}, hrToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var view attendance.View
	decodeData(t, rec, &view)
	assert.Equal(t, "leave", view.Status)

	// Stats reflect the correction immediately.
	rec = s.do(t, http.MethodGet, "/api/v1/attendance/stats",
		nil, s.token(t, "emp-1", jwt.RoleEmployee))
	require.Equal(t, http.StatusOK, rec.Code)

	var counts attendance.Counts
	decodeData(t, rec, &counts)
	assert.Equal(t, 1, counts.Leave)
}

func TestStatsEndpoint_RejectsBadDate(t *testing.T) {
	s := newTestServer(t, "emp-1")
	token := s.token(t, "emp-1", jwt.RoleEmployee)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/stats?date=03-10-2025", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyHistoryEndpoint(t *testing.T) {
	s := newTestServer(t, "emp-1")
	token := s.token(t, "emp-1", jwt.RoleEmployee)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in",
		map[string]string{"time": "09:30"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/my?limit=5", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []attendance.View
	decodeData(t, rec, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "late", views[0].Status)
}
