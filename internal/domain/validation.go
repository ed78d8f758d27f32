package domain

import "github.com/barbersmart/BS-AvailabilityService/pkg/types"

// Причины отказа в ValidationResult. Фиксированный набор строк,
// пригодных для прямого показа в интерфейсе бронирования.
const (
	ReasonDateBlocked   = "date blocked"
	ReasonClosedSpecial = "closed (special hours)"
	ReasonStaffDayOff   = "staff day off"
	ReasonOutsideHours  = "outside business hours"
	ReasonInsideBreak   = "inside break"
	ReasonSlotTaken     = "slot taken"
	ReasonCheckFailed   = "check failed"
)

// AvailableHours эффективное рабочее окно дня, выигравшее разрешение правил
type AvailableHours struct {
	Start      types.TimeString  `json:"start"`
	End        types.TimeString  `json:"end"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
}

// ValidationResult результат проверки даты/времени на доступность.
// Нарушение политики (закрыто, перерыв, выходной мастера) - это значение,
// а не ошибка: поле Reason заполняется только при IsValid=false.
// AvailableHours присутствует, когда для дня нашлось рабочее окно,
// даже если конкретное время в него не попало.
type ValidationResult struct {
	IsValid        bool            `json:"isValid"`
	Reason         string          `json:"reason,omitempty"`
	AvailableHours *AvailableHours `json:"availableHours,omitempty"`
}

// Valid создает успешный результат с найденным рабочим окном
func Valid(hours *AvailableHours) ValidationResult {
	return ValidationResult{IsValid: true, AvailableHours: hours}
}

// Invalid создает отказ без рабочего окна (день полностью закрыт)
func Invalid(reason string) ValidationResult {
	return ValidationResult{IsValid: false, Reason: reason}
}

// InvalidWithHours создает отказ по времени при открытом дне
// (время вне рабочего окна или внутри перерыва)
func InvalidWithHours(reason string, hours *AvailableHours) ValidationResult {
	return ValidationResult{IsValid: false, Reason: reason, AvailableHours: hours}
}

// HoursFromSchedule строит AvailableHours из канонического расписания дня
func HoursFromSchedule(day DaySchedule) *AvailableHours {
	return &AvailableHours{
		Start:      day.Start,
		End:        day.End,
		BreakStart: day.BreakStart,
		BreakEnd:   day.BreakEnd,
	}
}
