package availability

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/pkg/types"
)

// Input данные для решения о доступности одного слота
type Input struct {
	Cafe     *domain.Cafe
	Settings *domain.CafeSettings
	Date     time.Time
	Slot     types.TimeString
	Bookings []*domain.Booking // активные бронирования кафе на дату
}

// Policy решает, доступен ли слот для бронирования
type Policy interface {
	IsAvailable(in Input) bool
}

// PolicyFunc адаптер функции к Policy
type PolicyFunc func(in Input) bool

func (f PolicyFunc) IsAvailable(in Input) bool {
	return f(in)
}

// Названия политик в конфигурации
const (
	PolicyRandom        = "random"
	PolicyDeterministic = "deterministic"
)

// All слот доступен, только если его пропускают все политики
func All(policies ...Policy) Policy {
	return PolicyFunc(func(in Input) bool {
		for _, p := range policies {
			if !p.IsAvailable(in) {
				return false
			}
		}
		return true
	})
}

// Deterministic часы работы и вместимость: чистая функция от кафе, даты и бронирований
func Deterministic() Policy {
	return All(OpeningHours{}, Capacity{})
}

// ForBooking политика, которую проверяет создание бронирования.
// Вместимость проверяется всегда, часы работы при детерминированной выдаче слотов:
// слот, показанный закрытым, нельзя забронировать в обход выдачи.
// Случайная политика не воспроизводима, поэтому при ней повторяется только вместимость.
func ForBooking(policyName string) Policy {
	if policyName == PolicyRandom {
		return Capacity{}
	}
	return Deterministic()
}
