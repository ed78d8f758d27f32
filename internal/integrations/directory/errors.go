package directory

import "errors"

var (
	// ErrTenantNotFound возвращается, когда барбершоп не найден в справочнике
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в справочнике
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в справочнике
	ErrStaffNotFound = errors.New("staff not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation,
	// когда справочник недоступен и можно продолжить без его данных
	ErrServiceDegraded = errors.New("directory service unavailable: graceful degradation applied")
)
