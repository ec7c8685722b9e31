// Package models содержит сущности сервиса сокращения URL.
package models

// ShortIDLength - длина короткого кода
const ShortIDLength = 6

// URL - сохранённое соответствие короткого кода исходному URL
type URL struct {
	ID        string `json:"id" db:"id"`
	TargetURL string `json:"url" db:"url"`
}
