package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/CafeBookingService/pkg/types"
)

// PriceRange price tier of a café
type PriceRange string

const (
	PriceBudget   PriceRange = "$"
	PriceModerate PriceRange = "$$"
	PriceUpscale  PriceRange = "$$$"
)

// IsValid checks the tier against the fixed set
func (p PriceRange) IsValid() bool {
	return p == PriceBudget || p == PriceModerate || p == PriceUpscale
}

// Weekdays названия дней недели в порядке Monday..Sunday, ключи Cafe.Hours
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// Location адрес кафе
type Location struct {
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Coordinates [2]float64 `json:"coordinates"`
}

// DayHours часы работы в один день недели
type DayHours struct {
	Open  types.TimeString `json:"open"`
	Close types.TimeString `json:"close"`
}

// MenuItem позиция меню
type MenuItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// MenuSection раздел меню
type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// Cafe a bookable venue. Immutable after catalog initialization.
type Cafe struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Location    Location            `json:"location"`
	Photos      []string            `json:"photos"`
	Rating      float64             `json:"rating"`
	ReviewCount int                 `json:"reviewCount"`
	PriceRange  PriceRange          `json:"priceRange"`
	Categories  []string            `json:"categories"`
	Hours       map[string]DayHours `json:"hours"`
	Menu        []MenuSection       `json:"menu"`
}

// PrimaryPhoto returns the first photo, used as the booking snapshot image
func (c *Cafe) PrimaryPhoto() string {
	if len(c.Photos) == 0 {
		return ""
	}
	return c.Photos[0]
}

// HoursOn возвращает часы работы в день недели указанной даты
func (c *Cafe) HoursOn(date time.Time) (DayHours, bool) {
	hours, ok := c.Hours[date.Weekday().String()]
	return hours, ok
}

// HasCategory case-insensitive membership check
func (c *Cafe) HasCategory(category string) bool {
	for _, existing := range c.Categories {
		if strings.EqualFold(existing, category) {
			return true
		}
	}
	return false
}

// Validate проверяет инварианты записи каталога
func (c *Cafe) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: cafe id is required", ErrValidationFailed)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: cafe %s: name is required", ErrValidationFailed, c.ID)
	}
	if len(c.Photos) == 0 {
		return fmt.Errorf("%w: cafe %s: at least one photo is required", ErrValidationFailed, c.ID)
	}
	if c.Rating < 0 || c.Rating > 5 {
		return fmt.Errorf("%w: cafe %s: rating %.1f out of [0, 5]", ErrValidationFailed, c.ID, c.Rating)
	}
	if c.ReviewCount < 0 {
		return fmt.Errorf("%w: cafe %s: negative review count", ErrValidationFailed, c.ID)
	}
	if !c.PriceRange.IsValid() {
		return fmt.Errorf("%w: cafe %s: unknown price range %q", ErrValidationFailed, c.ID, c.PriceRange)
	}

	if len(c.Hours) != len(Weekdays) {
		return fmt.Errorf("%w: cafe %s: expected %d weekday entries, got %d",
			ErrValidationFailed, c.ID, len(Weekdays), len(c.Hours))
	}
	for _, day := range Weekdays {
		hours, ok := c.Hours[day]
		if !ok {
			return fmt.Errorf("%w: cafe %s: missing hours for %s", ErrValidationFailed, c.ID, day)
		}
		if err := hours.Open.Validate(); err != nil {
			return fmt.Errorf("%w: cafe %s: %s open: %v", ErrValidationFailed, c.ID, day, err)
		}
		if err := hours.Close.Validate(); err != nil {
			return fmt.Errorf("%w: cafe %s: %s close: %v", ErrValidationFailed, c.ID, day, err)
		}
		if !hours.Open.IsBefore(hours.Close) {
			return fmt.Errorf("%w: cafe %s: %s opens after it closes", ErrValidationFailed, c.ID, day)
		}
	}

	for _, section := range c.Menu {
		for _, item := range section.Items {
			if item.Price < 0 {
				return fmt.Errorf("%w: cafe %s: negative price for %q", ErrValidationFailed, c.ID, item.Name)
			}
		}
	}

	return nil
}

// CafeFilter параметры поиска по каталогу. Пустое поле означает "без ограничения".
type CafeFilter struct {
	SearchTerm string
	Category   string
	City       string
	PriceRange string
}

// Matches применяет все заданные условия через логическое И:
// SearchTerm - подстрока в названии или описании без учета регистра,
// Category - принадлежность к категориям без учета регистра,
// City - точное совпадение без учета регистра,
// PriceRange - точное совпадение.
func (f CafeFilter) Matches(c *Cafe) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			return false
		}
	}
	if f.Category != "" && !c.HasCategory(f.Category) {
		return false
	}
	if f.City != "" && !strings.EqualFold(c.Location.City, f.City) {
		return false
	}
	if f.PriceRange != "" && string(c.PriceRange) != f.PriceRange {
		return false
	}
	return true
}
