package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"weather-api/internal/apperr"
	"weather-api/internal/application/middleware"
	"weather-api/internal/domain/model"
)

type fakeWeatherUseCase struct {
	record model.WeatherRecord
	err    error
	city   string
	calls  int
}

func (f *fakeWeatherUseCase) GetWeather(ctx context.Context, city string) (model.WeatherRecord, error) {
	f.calls++
	f.city = city
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func newTestServer(useCase *fakeWeatherUseCase) *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler()

	NewRootController(e).InitRootRoutes()
	NewWeatherController(e.Group(""), useCase).InitWeatherRoutes()
	return e
}

func doRequest(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHelloRoute(t *testing.T) {
	rec := doRequest(newTestServer(&fakeWeatherUseCase{}), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "Hello, World!" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestGetWeatherSuccess(t *testing.T) {
	useCase := &fakeWeatherUseCase{record: model.WeatherRecord{"name": "London", "cod": float64(200)}}
	rec := doRequest(newTestServer(useCase), "/weather?city=London")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if useCase.city != "London" {
		t.Errorf("usecase received city %q", useCase.city)
	}

	var body model.WeatherRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["name"] != "London" {
		t.Errorf("body = %v", body)
	}
}

func TestGetWeatherValidation(t *testing.T) {
	tests := []struct {
		name string
		city string
	}{
		{"missing", ""},
		{"too short", "A"},
		{"too long", "AbcdefghijAbcdefghijAbcdefghijAbcdefghijAbcdefghijX"},
		{"digits", "London123"},
		{"punctuation", "London;DROP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &fakeWeatherUseCase{record: model.WeatherRecord{}}
			rec := doRequest(newTestServer(useCase), "/weather?city="+url.QueryEscape(tt.city))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if useCase.calls != 0 {
				t.Error("invalid city must never reach the orchestrator")
			}

			var body model.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Status != "error" || body.StatusCode != http.StatusBadRequest {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestGetWeatherAcceptsAccentsSpacesHyphens(t *testing.T) {
	for _, city := range []string{"São Paulo", "Saint-Denis", "New York"} {
		useCase := &fakeWeatherUseCase{record: model.WeatherRecord{}}
		rec := doRequest(newTestServer(useCase), "/weather?city="+url.QueryEscape(city))
		if rec.Code != http.StatusOK {
			t.Errorf("city %q: status = %d, want 200", city, rec.Code)
		}
	}
}

func TestGetWeatherCityNotFoundBody(t *testing.T) {
	useCase := &fakeWeatherUseCase{err: apperr.Fetch("City not found: Atlantis", 404, nil)}
	rec := doRequest(newTestServer(useCase), "/weather?city=Atlantis")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body model.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "City not found: Atlantis" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Status != "error" || body.StatusCode != 404 {
		t.Errorf("body = %+v", body)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Errorf("timestamp not ISO-8601: %v", err)
	}
}

func TestGetWeatherErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"upstream unavailable", apperr.Fetch("Weather service temporarily unavailable", 503, nil), 503},
		{"storage permission", apperr.StoragePermission("S3 access error: AccessDenied", nil), 403},
		{"untyped error hides detail", context.DeadlineExceeded, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newTestServer(&fakeWeatherUseCase{err: tt.err}), "/weather?city=London")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body model.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.StatusCode != tt.wantStatus {
				t.Errorf("status_code = %d, want %d", body.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == 500 && body.Error != "Internal server error" {
				t.Errorf("untyped errors must not leak detail, got %q", body.Error)
			}
		})
	}
}
