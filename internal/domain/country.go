package domain

import (
	"sort"
	"time"
)

// CountryView - общий набор полей страны для чтения.
// Реализуется только *Country (значение из кеша или API) и *CountryEntity (запись из БД).
type CountryView interface {
	GetISOCode() string
	GetName() string
	GetCapital() CityCoordinates
	GetAreaSize() float64
	GetPopulation() int64
	GetLanguages() []string
	GetCurrencyCodes() []string

	countryView()
}

// Country - страна в том виде, в котором она лежит в кеше и приходит из API
type Country struct {
	ISOCode          string             `json:"iso_code"`
	Name             string             `json:"name"`
	Capital          string             `json:"capital"`
	CapitalLongitude float64            `json:"capital_longitude"`
	CapitalLatitude  float64            `json:"capital_latitude"`
	AreaSize         float64            `json:"area_size"`
	Population       int64              `json:"population"`
	Currencies       map[string]string  `json:"currencies"`
	Languages        []string           `json:"languages"`
	Rates            map[string]float64 `json:"rates,omitempty"`
}

func (c *Country) GetISOCode() string   { return c.ISOCode }
func (c *Country) GetName() string      { return c.Name }
func (c *Country) GetAreaSize() float64 { return c.AreaSize }
func (c *Country) GetPopulation() int64 { return c.Population }

func (c *Country) GetCapital() CityCoordinates {
	return CityCoordinates{
		Name:      c.Capital,
		Longitude: c.CapitalLongitude,
		Latitude:  c.CapitalLatitude,
	}
}

func (c *Country) GetLanguages() []string {
	if c.Languages == nil {
		return []string{}
	}
	return c.Languages
}

// GetCurrencyCodes возвращает коды валют в алфавитном порядке
func (c *Country) GetCurrencyCodes() []string {
	codes := make([]string, 0, len(c.Currencies))
	for code := range c.Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *Country) countryView() {}

// CountryEntity - страна, сохранённая в БД, со связанными справочниками
type CountryEntity struct {
	ISOCode    string     `json:"iso_code" db:"iso_code"`
	Name       string     `json:"name" db:"name"`
	AreaSize   float64    `json:"area_size" db:"area_size"`
	Population int64      `json:"population" db:"population"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	Languages  []Language `json:"languages" db:"-"`
	Currencies []Currency `json:"currencies" db:"-"`
	Capital    *City      `json:"capital,omitempty" db:"-"`
}

func (e *CountryEntity) GetISOCode() string   { return e.ISOCode }
func (e *CountryEntity) GetName() string      { return e.Name }
func (e *CountryEntity) GetAreaSize() float64 { return e.AreaSize }
func (e *CountryEntity) GetPopulation() int64 { return e.Population }

func (e *CountryEntity) GetCapital() CityCoordinates {
	if e.Capital == nil {
		return CityCoordinates{}
	}
	return e.Capital.Coordinates()
}

func (e *CountryEntity) GetLanguages() []string {
	names := make([]string, 0, len(e.Languages))
	for _, l := range e.Languages {
		names = append(names, l.Name)
	}
	return names
}

func (e *CountryEntity) GetCurrencyCodes() []string {
	codes := make([]string, 0, len(e.Currencies))
	for _, c := range e.Currencies {
		codes = append(codes, c.ISOCode)
	}
	return codes
}

func (e *CountryEntity) countryView() {}

// ToCountry собирает кешируемое представление из записи БД
func (e *CountryEntity) ToCountry() *Country {
	country := &Country{
		ISOCode:    e.ISOCode,
		Name:       e.Name,
		AreaSize:   e.AreaSize,
		Population: e.Population,
		Currencies: make(map[string]string, len(e.Currencies)),
		Languages:  e.GetLanguages(),
	}
	for _, c := range e.Currencies {
		country.Currencies[c.ISOCode] = c.Name
	}
	if e.Capital != nil {
		country.Capital = e.Capital.Name
		country.CapitalLongitude = e.Capital.Longitude
		country.CapitalLatitude = e.Capital.Latitude
	}
	return country
}

// Language - справочник языков
type Language struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Currency - справочник валют
type Currency struct {
	ISOCode   string    `json:"iso_code" db:"iso_code"`
	Name      string    `json:"name" db:"name"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var (
	_ CountryView = (*Country)(nil)
	_ CountryView = (*CountryEntity)(nil)
)
