package dto

// CityNameRequest - запрос на поиск города по названию
type CityNameRequest struct {
	Name string `query:"name" validate:"required,max=255,city_name"`
}

// CountryNameRequest - запрос на поиск страны по названию
type CountryNameRequest struct {
	Name string `query:"name" validate:"required,max=255,country_name"`
}

// WeatherRequest - запрос погоды по координатам
type WeatherRequest struct {
	Lat float64 `query:"lat" validate:"min=-90,max=90"`
	Lon float64 `query:"lon" validate:"min=-180,max=180"`
}

// CityRecordRequest - запрос сохранённого города по координатам "lon lat"
type CityRecordRequest struct {
	Coordinates string `query:"coordinates" validate:"required"`
}

// CurrencyRatesRequest - запрос курсов по списку буквенных кодов
type CurrencyRatesRequest struct {
	Codes []string `validate:"required,min=1,max=50,dive,len=3,alpha"`
}
