package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExecuteDecodesSuccess(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("query q = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"London"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{ReadTimeout: 2 * time.Second})

	success := map[string]any{}
	_, _, status, err := client.Request().
		WithQueryParams(map[string]string{"q": "London"}).
		WithSuccessResp(&success).
		Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if status != nethttp.StatusOK {
		t.Errorf("status = %d", status)
	}
	if success["name"] != "London" {
		t.Errorf("success = %v", success)
	}
}

func TestExecuteDecodesErrorBody(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	errBody := map[string]any{}
	_, _, status, err := client.Request().
		WithErrorResp(&errBody).
		Execute()
	if err != nil {
		t.Fatalf("an HTTP error status is not a transport error: %v", err)
	}
	if status != nethttp.StatusNotFound {
		t.Errorf("status = %d", status)
	}
	if errBody["cod"] != "404" {
		t.Errorf("error body = %v", errBody)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
	server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	_, _, status, err := client.Request().Execute()
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if status != 0 {
		t.Errorf("status = %d, want 0 when the server was never reached", status)
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewHttpClient(server.URL, ClientOptions{})
	_, _, _, err := client.Request().WithContext(ctx).Execute()
	if err == nil {
		t.Fatal("expected a context deadline error")
	}
}
