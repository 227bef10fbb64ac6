package api

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weather-api/internal/apperr"
	"weather-api/pkg/http"
)

var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestGateway(baseURL string) *openWeatherGateway {
	return &openWeatherGateway{
		apiKey:     "test-key",
		httpClient: http.NewHttpClient(baseURL, http.ClientOptions{ReadTimeout: 2 * time.Second, ConnectionTimeout: 2 * time.Second}),
		now:        func() time.Time { return fixedNow },
	}
}

func TestFetchWeatherSuccess(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":15.6},"weather":[{"description":"clear sky"}],"name":"London","cod":200}`))
	}))
	defer server.Close()

	record, err := newTestGateway(server.URL).FetchWeather(context.Background(), "London")
	if err != nil {
		t.Fatalf("FetchWeather() error = %v", err)
	}

	if gotQuery["q"] != "London" || gotQuery["appid"] != "test-key" || gotQuery["units"] != "metric" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}
	if record["name"] != "London" {
		t.Errorf("original fields must be preserved, got name = %v", record["name"])
	}
	stamped, ok := record["fetch_timestamp"].(string)
	if !ok {
		t.Fatal("fetch_timestamp missing")
	}
	if _, err := time.Parse(time.RFC3339, stamped); err != nil {
		t.Errorf("fetch_timestamp not ISO-8601: %v", err)
	}
	if record.Temperature() != 15.6 {
		t.Errorf("Temperature() = %v", record.Temperature())
	}
}

func TestFetchWeatherCityNotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"transport 404", nethttp.StatusNotFound, `{"cod":"404","message":"city not found"}`},
		{"200 with cod 404", nethttp.StatusOK, `{"cod":"404","message":"city not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestGateway(server.URL).FetchWeather(context.Background(), "Atlantis")
			appErr, ok := apperr.As(err)
			if !ok {
				t.Fatalf("expected tagged error, got %v", err)
			}
			if appErr.StatusCode != 404 {
				t.Errorf("StatusCode = %d, want 404", appErr.StatusCode)
			}
			if appErr.Message != "City not found: Atlantis" {
				t.Errorf("Message = %q", appErr.Message)
			}
		})
	}
}

func TestFetchWeatherUpstreamError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusInternalServerError)
		w.Write([]byte(`{"cod":500,"message":"internal error"}`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).FetchWeather(context.Background(), "London")
	appErr, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected tagged error, got %v", err)
	}
	if appErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", appErr.StatusCode)
	}
	if appErr.Err == nil {
		t.Error("expected the upstream status and body wrapped as cause")
	}
}

func TestFetchWeatherNetworkError(t *testing.T) {
	// Server closed before the call: connection refused.
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
	server.Close()

	_, err := newTestGateway(server.URL).FetchWeather(context.Background(), "London")
	appErr, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected tagged error, got %v", err)
	}
	if appErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", appErr.StatusCode)
	}
	if appErr.Err == nil {
		t.Error("expected the transport error wrapped as cause")
	}
}

func TestFetchWeatherMalformedBody(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).FetchWeather(context.Background(), "London")
	appErr, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected tagged error, got %v", err)
	}
	if appErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", appErr.StatusCode)
	}
}
