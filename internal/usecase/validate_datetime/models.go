package validate_datetime

import (
	"time"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// Request модель запроса на проверку даты и времени
type Request struct {
	TenantID int64             // ID барбершопа
	UnitID   *int64            // ID точки (опционально)
	StaffID  *int64            // ID мастера (опционально)
	Date     time.Time         // Проверяемая дата (без времени)
	Time     *types.TimeString // Проверяемое время (опционально, без него - проверка уровня дня)
}

// Response результат проверки: политика расписания выражена значением,
// а не ошибкой
type Response struct {
	Result domain.ValidationResult
}
