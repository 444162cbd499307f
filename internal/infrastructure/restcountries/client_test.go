package restcountries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoinfo-bot/internal/domain"
	"github.com/geoinfo-bot/internal/pkg/httpretry"
)

const polandPayload = `[{
  "name": {"common": "Poland"},
  "cca2": "PL",
  "currencies": {"PLN": {"name": "Polish złoty", "symbol": "zł"}},
  "capital": ["Warsaw"],
  "languages": {"pol": "Polish"},
  "translations": {"rus": {"official": "Республика Польша", "common": "Польша"}},
  "area": 312679.0,
  "population": 37950802,
  "capitalInfo": {"latlng": [52.25, 21.0]}
}]`

func newTestClient(serverURL string) *client {
	logger := zap.NewNop()
	return newClient(httpretry.New("test", time.Second, 0, logger), serverURL, logger)
}

func TestClient_GetCountryDetail(t *testing.T) {
	t.Run("parses country", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/PL", r.URL.Path)
			w.Write([]byte(polandPayload))
		}))
		defer server.Close()

		country, err := newTestClient(server.URL).GetCountryDetail(context.Background(), "PL")
		require.NoError(t, err)
		assert.Equal(t, &domain.Country{
			ISOCode:          "PL",
			Name:             "Польша",
			Capital:          "Warsaw",
			CapitalLongitude: 21.0,
			CapitalLatitude:  52.25,
			AreaSize:         312679,
			Population:       37950802,
			Currencies:       map[string]string{"PLN": "Polish złoty"},
			Languages:        []string{"Polish"},
		}, country)
	})

	t.Run("unknown code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status": 404, "message": "Not Found"}`))
		}))
		defer server.Close()

		country, err := newTestClient(server.URL).GetCountryDetail(context.Background(), "ZZ")
		require.NoError(t, err)
		assert.Nil(t, country)
	})

	t.Run("country without capital", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"cca2": "AQ", "name": {"common": "Antarctica"}, "area": 14000000, "population": 1000}]`))
		}))
		defer server.Close()

		country, err := newTestClient(server.URL).GetCountryDetail(context.Background(), "AQ")
		require.NoError(t, err)
		assert.Equal(t, "Antarctica", country.Name)
		assert.Empty(t, country.Capital)
		assert.Empty(t, country.Currencies)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		country, err := newTestClient(server.URL).GetCountryDetail(context.Background(), "PL")
		assert.Error(t, err)
		assert.Nil(t, country)
	})
}
