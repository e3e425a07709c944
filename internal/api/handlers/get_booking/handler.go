package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/api/middleware"
	"github.com/m04kA/CafeBookingService/internal/service/bookings"
)

const (
	msgMissingUserID = "требуется авторизация"
	msgNotFound      = "бронирование не найдено"
	msgNotOwner      = "бронирование принадлежит другому гостю"
)

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

// Handle GET /api/v1/bookings/{bookingId}
// Гость видит только свои бронирования, карточка содержит доступные ему действия.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - No authenticated guest for booking_id=%s", bookingID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, user.ID)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgNotFound)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Guest %s (%s) asked for a booking of another guest: booking_id=%s",
			user.ID, user.Email, bookingID)
		handlers.RespondForbidden(w, msgNotOwner)
		return
	default:
		h.logger.Error("GET /bookings/{id} - Ledger lookup failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	details := ToDetails(booking)
	h.logger.Info("GET /bookings/{id} - booking_id=%s cafe_id=%s status=%s can_cancel=%t",
		booking.ID, booking.CafeID, booking.Status, details.CanCancel)

	// Карточка содержит личные данные гостя
	w.Header().Set("Cache-Control", "no-store")
	handlers.RespondJSON(w, http.StatusOK, details)
}
