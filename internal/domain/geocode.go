package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Типы объектов, которые возвращает геокодер
const (
	KindCountry  = "country"
	KindProvince = "province"
	KindLocality = "locality"
)

// CityKinds - типы результатов, которые считаются городом
var CityKinds = []string{KindProvince, KindLocality}

// GeocodeResult - результат геокодирования по названию
type GeocodeResult struct {
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
	// Coordinates - "долгота широта", как их отдаёт геокодер
	Coordinates string `json:"coordinates"`
	CountryCode string `json:"country_code"`
	Kind        string `json:"search_type"`
}

// IsCity проверяет, что результат относится к городу
func (g GeocodeResult) IsCity() bool {
	for _, k := range CityKinds {
		if g.Kind == k {
			return true
		}
	}
	return false
}

// IsCountry проверяет, что результат относится к стране
func (g GeocodeResult) IsCountry() bool {
	return g.Kind == KindCountry
}

// Point разбирает строку координат
func (g GeocodeResult) Point() (Point, error) {
	return ParseCoordinates(g.Coordinates)
}

// ParseCoordinates разбирает строку вида "lon lat" (пробел или подчёркивание)
func ParseCoordinates(s string) (Point, error) {
	parts := strings.Fields(strings.ReplaceAll(s, "_", " "))
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid coordinates %q", s)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
	}
	if !(lon >= -180 && lon <= 180) || !(lat >= -90 && lat <= 90) {
		return Point{}, fmt.Errorf("coordinates out of range %q", s)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// FormatCoordinates собирает ключ координат "lon lat"
func FormatCoordinates(lon, lat float64) string {
	return strconv.FormatFloat(lon, 'f', -1, 64) + " " + strconv.FormatFloat(lat, 'f', -1, 64)
}
