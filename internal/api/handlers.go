package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"roombook/internal/database"
	"roombook/internal/domain"
	"roombook/internal/metrics"
	"roombook/internal/service"
)

const (
	msgServerError    = "Lỗi server"
	msgSlotTaken      = "Thời gian này đã được đặt!"
	msgBookingMissing = "Không tìm thấy booking"
	msgDeleted        = "Đã xóa booking thành công"
)

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBookings(w, r)
	case http.MethodPost:
		s.createBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request) {
	weekStart, grid, err := s.service.ListCurrentWeek(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list bookings failed")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"weekStart": weekStart,
		"bookings":  grid,
	})
}

func (s *HTTPServer) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Thiếu thông tin bắt buộc")
		return
	}

	booking, err := s.service.Create(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, database.ErrSlotTaken):
			metrics.IncSlotConflicts()
			writeError(w, http.StatusBadRequest, msgSlotTaken)
		default:
			s.logger.Error().Err(err).Msg("create booking failed")
			writeError(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	metrics.IncBookingsCreated()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"booking": booking,
	})
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	removed, err := s.service.Remove(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("delete booking failed")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, msgBookingMissing)
		return
	}

	metrics.IncBookingsDeleted(1)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": msgDeleted,
	})
}

func (s *HTTPServer) handleResetWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	weekStart, count, err := s.service.ResetCurrentWeek(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("reset week failed")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	metrics.IncBookingsDeleted(float64(count))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   fmt.Sprintf("Đã xóa %d booking(s)", count),
		"weekStart": weekStart,
	})
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("stats failed")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exporter == nil {
		writeError(w, http.StatusNotFound, "export is not configured")
		return
	}

	path, err := s.exporter.ExportWeek(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}
