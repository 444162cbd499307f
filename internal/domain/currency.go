package domain

// CurrencyRate - курс валюты к рублю по данным ЦБ
type CurrencyRate struct {
	ID       string  `json:"ID"`
	NumCode  string  `json:"NumCode"`
	CharCode string  `json:"CharCode"`
	Nominal  int     `json:"Nominal"`
	Name     string  `json:"Name"`
	Value    float64 `json:"Value"`
	Previous float64 `json:"Previous"`
}

// RateTable - полная таблица курсов, ключ - буквенный код валюты
type RateTable map[string]CurrencyRate

// Filter оставляет курсы только для запрошенных кодов, сохраняя порядок запроса.
// Коды, которых нет в таблице, пропускаются.
func (t RateTable) Filter(codes []string) []CurrencyRate {
	result := make([]CurrencyRate, 0, len(codes))
	for _, code := range codes {
		if rate, ok := t[code]; ok {
			result = append(result, rate)
		}
	}
	return result
}
