// Package proto содержит типы сообщений и описание gRPC сервиса сокращения URL.
// Сообщения передаются в JSON через кодек JSONCodec.
package proto

// ShortenRequest представляет запрос на создание короткого URL
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse представляет ответ с созданным коротким URL
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// ResolveRequest представляет запрос на получение исходного URL по коду
type ResolveRequest struct {
	ID string `json:"id"`
}

// ResolveResponse представляет ответ с исходным URL
type ResolveResponse struct {
	URL string `json:"url"`
}

// PingRequest представляет запрос проверки состояния
type PingRequest struct{}

// PingResponse представляет ответ проверки состояния
type PingResponse struct {
	DatabaseAvailable bool `json:"database_available"`
}
