package messaging

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("messaging client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("messaging client: invalid response")

	// ErrSendRejected возвращается, когда шлюз отклонил отправку сообщения
	ErrSendRejected = errors.New("messaging gateway rejected the message")
)
