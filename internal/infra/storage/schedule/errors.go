package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда график мастера не найден
	ErrScheduleNotFound = errors.New("schedule.repository: staff schedule not found")

	// ErrSpecialDayNotFound возвращается, когда особый день не найден
	ErrSpecialDayNotFound = errors.New("schedule.repository: special day not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("schedule.repository: blocked date not found")

	// ErrPolicyNotFound возвращается, когда политика бронирования не найдена
	ErrPolicyNotFound = errors.New("schedule.repository: booking policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncodeSchedule возвращается при ошибке сериализации графика в JSON
	ErrEncodeSchedule = errors.New("schedule.repository: failed to encode schedule")
)
