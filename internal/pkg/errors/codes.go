package errors

import "net/http"

var (
	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"City not found",
		http.StatusNotFound,
	)

	ErrCountryNotFound = New(
		"COUNTRY_NOT_FOUND",
		"Country not found",
		http.StatusNotFound,
	)

	ErrCurrencyRatesNotFound = New(
		"CURRENCY_RATES_NOT_FOUND",
		"No rates for requested currencies",
		http.StatusNotFound,
	)

	ErrWeatherNotFound = New(
		"WEATHER_NOT_FOUND",
		"Weather is not available",
		http.StatusNotFound,
	)

	ErrInvalidCityName = New(
		"INVALID_CITY_NAME",
		"Invalid city name",
		http.StatusBadRequest,
	)

	ErrInvalidCountryName = New(
		"INVALID_COUNTRY_NAME",
		"Invalid country name",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCityAlreadyExists = New(
		"CITY_ALREADY_EXISTS",
		"City already exists",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
