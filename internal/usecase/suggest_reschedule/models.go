package suggest_reschedule

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Request модель запроса на предложение переноса после no-show
type Request struct {
	AppointmentID int64
	TenantID      int64 // сверяется с записью, чужую запись пометить нельзя
}

// Suggestion один предложенный клиенту вариант переноса
type Suggestion struct {
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
}

// Response модель ответа с предложенными вариантами
type Response struct {
	AppointmentID int64        `json:"appointmentId"`
	Suggestions   []Suggestion `json:"suggestions"`
	MessageSent   bool         `json:"messageSent"`
}

// Config параметры поиска вариантов переноса
type Config struct {
	SuggestionDays int // горизонт поиска в днях от даты пропущенной записи
	MaxSuggestions int // максимум вариантов в сообщении клиенту
}

// DefaultConfig возвращает конфигурацию поиска по умолчанию
func DefaultConfig() Config {
	return Config{
		SuggestionDays: 7,
		MaxSuggestions: 3,
	}
}

// templateRescheduleSuggestion шаблон сообщения с вариантами переноса
const templateRescheduleSuggestion = "reschedule_suggestion"
