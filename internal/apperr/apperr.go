// Package apperr описывает типизированные ошибки сервиса сокращения URL.
// Каждая ошибка относится к одному из трёх видов, которые транспортный слой
// однозначно отображает в коды ответа.
package apperr

import "errors"

// Kind определяет вид ошибки
type Kind int

const (
	// KindInternal - сбой хранилища, нарушение ограничения или иная непредвиденная ошибка
	KindInternal Kind = iota
	// KindInvalidInput - некорректные входные данные, хранилище не затрагивалось
	KindInvalidInput
	// KindNotFound - запрошенная запись отсутствует
	KindNotFound
)

// String возвращает имя вида ошибки
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error - ошибка с видом, коротким сообщением для клиента и исходной причиной
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap возвращает исходную причину
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput создаёт ошибку вида KindInvalidInput
func InvalidInput(msg string, err error) error {
	return &Error{Kind: KindInvalidInput, Msg: msg, Err: err}
}

// NotFound создаёт ошибку вида KindNotFound
func NotFound(msg string, err error) error {
	return &Error{Kind: KindNotFound, Msg: msg, Err: err}
}

// Internal создаёт ошибку вида KindInternal
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf возвращает вид ошибки. Ошибки без вида считаются внутренними.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message возвращает сообщение для клиента
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Internal server error"
}
