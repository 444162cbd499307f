package domain

// Weather - текущая погода в точке
type Weather struct {
	Temperature          float64 `json:"temperature"`
	TemperatureFeelsLike float64 `json:"temperature_feels_like"`
	MaxTemperature       float64 `json:"max_temperature"`
	MinTemperature       float64 `json:"min_temperature"`
	WeatherType          string  `json:"weather_type"`
	Humidity             float64 `json:"humidity"`
	WindSpeed            float64 `json:"wind_speed"`
}
