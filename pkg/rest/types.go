// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Offer Лучшее предложение по серверу
type Offer struct {
	Server       string  `json:"server"`
	Offers       int64   `json:"offers"`
	PriceUSD     float64 `json:"priceUSD"`
	ValuePer100k string  `json:"valuePer100k,omitempty"`
}

// Prices Текущий опубликованный снимок
type Prices struct {
	Available   bool       `json:"available"`
	LastUpdated *time.Time `json:"lastUpdated"`
	Servers     []Offer    `json:"servers"`
	Message     string     `json:"message,omitempty"`
}

// DefaultOffer Предложение, выбранное по умолчанию
type DefaultOffer struct {
	Server *Offer `json:"server"`
}

// Conversion Стоимость количества золота. Value == nil означает "цена неизвестна"
type Conversion struct {
	Quantity  int64    `json:"quantity"`
	Value     *float64 `json:"value"`
	Available bool     `json:"available"`
	Formatted string   `json:"formatted"`
}

// ConvertRequest Запрос пакетного пересчёта
type ConvertRequest struct {
	Server     string  `json:"server" validate:"omitempty,max=200"`
	Quantities []int64 `json:"quantities" validate:"omitempty,max=100"`
}

// ConvertResponse Результат пересчёта для выбранного сервера
type ConvertResponse struct {
	Server      Offer        `json:"server"`
	Conversions []Conversion `json:"conversions"`
}

// Refresh Результат ручного запуска обновления
type Refresh struct {
	Triggered bool   `json:"triggered"`
	Reason    string `json:"reason,omitempty"`
}

// HistoryPoint Точка истории цен
type HistoryPoint struct {
	Server     string    `json:"server"`
	PriceUSD   float64   `json:"priceUSD"`
	Offers     int64     `json:"offers"`
	CapturedAt time.Time `json:"capturedAt"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
