package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	"github.com/chapi1234/gammoda-attendance-go/internal/handler/http/response"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListByDay(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	StatsByDay(w http.ResponseWriter, r *http.Request)
	HRUpsert(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.Service, loc *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// dayParam resolves the optional ?date=YYYY-MM-DD query, defaulting to today.
func (h *attendanceHandlerImpl) dayParam(r *http.Request) (time.Time, error) {
	if date := r.URL.Query().Get("date"); date != "" {
		return clock.ParseDay(date, h.loc)
	}
	return clock.DayKeyOf(time.Now(), h.loc), nil
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// ListByDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDay(w http.ResponseWriter, r *http.Request) {
	day, err := h.dayParam(r)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.ListByDay(r.Context(), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			response.BadRequest(w, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	result, err := h.attendanceService.MyHistory(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StatsByDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) StatsByDay(w http.ResponseWriter, r *http.Request) {
	day, err := h.dayParam(r)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.StatsByDay(r.Context(), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HRUpsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) HRUpsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.HRUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.HRUpsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}
