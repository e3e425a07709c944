package get_booking_qr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/api/middleware"
	"github.com/m04kA/CafeBookingService/internal/service/bookings"
)

const (
	defaultSize = 256
	minSize     = 128
	maxSize     = 1024
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgInvalidSize   = "некорректный размер изображения"
)

// ConfirmationURI содержимое QR-кода подтверждения бронирования
func ConfirmationURI(bookingID string) string {
	return "cafebooking://bookings/" + bookingID
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/qr
// Query params: size (опционально, 128..1024 px)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/qr - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	size := defaultSize
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		parsed, err := strconv.Atoi(sizeStr)
		if err != nil || parsed < minSize || parsed > maxSize {
			h.logger.Warn("GET /bookings/{id}/qr - Invalid size: %s", sizeStr)
			handlers.RespondBadRequest(w, msgInvalidSize)
			return
		}
		size = parsed
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/qr - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/qr - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/qr - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	png, err := qrcode.Encode(ConfirmationURI(booking.ID), qrcode.Medium, size)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/qr - Failed to encode QR: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
