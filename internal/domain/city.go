package domain

import "time"

// City - город; одна и та же структура используется в кеше и в БД
type City struct {
	ID          int64     `json:"id,omitempty" db:"id"`
	Name        string    `json:"name" db:"name"`
	CountryCode string    `json:"country_code" db:"country_code"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	IsCapital   bool      `json:"is_capital" db:"is_capital"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// CoordinatesKey - координаты в формате "lon lat"
func (c City) CoordinatesKey() string {
	return FormatCoordinates(c.Longitude, c.Latitude)
}

func (c City) Coordinates() CityCoordinates {
	return CityCoordinates{Name: c.Name, Longitude: c.Longitude, Latitude: c.Latitude}
}

// CityCoordinates - название и координаты города (обычно столицы)
type CityCoordinates struct {
	Name      string  `json:"name" validate:"required"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
}

// CountryOverview - вся информация о стране, собранная из четырёх независимых частей
type CountryOverview struct {
	Detail     CountryView      `json:"detail" validate:"required"`
	Languages  []string         `json:"languages" validate:"required"`
	Currencies []string         `json:"currencies" validate:"required"`
	Capital    *CityCoordinates `json:"capital" validate:"required"`
}
