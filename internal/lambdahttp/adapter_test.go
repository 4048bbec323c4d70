package lambdahttp

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func v2Event(method, path, query string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath:        path,
		RawQueryString: query,
		Headers:        map[string]string{"accept": "application/json"},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID:  "req-123",
			DomainName: "api.example.test",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:   method,
				Path:     path,
				SourceIP: "203.0.113.9",
			},
		},
	}
}

func TestHandleMapsRequestAndResponse(t *testing.T) {
	var seen *http.Request
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=20")
		w.Header().Add("Set-Cookie", "a=1")
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	resp, err := New(h, nil).Handle(context.Background(), v2Event(http.MethodGet, "/api/espn", "path=football/nfl/scoreboard"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if seen.Method != http.MethodGet || seen.URL.Path != "/api/espn" {
		t.Fatalf("unexpected request %s %s", seen.Method, seen.URL.Path)
	}
	if got := seen.URL.Query().Get("path"); got != "football/nfl/scoreboard" {
		t.Fatalf("unexpected query %q", got)
	}
	if seen.Header.Get("Accept") != "application/json" || seen.Header.Get("X-Request-ID") != "req-123" {
		t.Fatalf("unexpected headers %v", seen.Header)
	}
	if seen.RemoteAddr != "203.0.113.9" || seen.Host != "api.example.test" {
		t.Fatalf("unexpected remote %q host %q", seen.RemoteAddr, seen.Host)
	}

	if resp.StatusCode != http.StatusAccepted || resp.Body != `{"ok":true}` || resp.IsBase64Encoded {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Headers["Cache-Control"] != "public, max-age=20" {
		t.Fatalf("unexpected headers %v", resp.Headers)
	}
	if len(resp.Cookies) != 1 || resp.Cookies[0] != "a=1" {
		t.Fatalf("expected cookie mapped, got %v", resp.Cookies)
	}
	if _, ok := resp.Headers["Set-Cookie"]; ok {
		t.Fatalf("set-cookie must move to cookies")
	}
}

func TestHandleDecodesBase64Body(t *testing.T) {
	var body string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusSeeOther)
	})

	event := v2Event(http.MethodPost, "/preferences/auto-refresh", "")
	event.Body = base64.StdEncoding.EncodeToString([]byte("enabled=on"))
	event.IsBase64Encoded = true

	resp, err := New(h, nil).Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if body != "enabled=on" || resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("unexpected body %q status %d", body, resp.StatusCode)
	}
}

func TestHandleRejectsInvalidBase64(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})
	event := v2Event(http.MethodPost, "/refresh", "")
	event.Body = "***"
	event.IsBase64Encoded = true

	resp, err := New(h, nil).Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleEncodesBinaryBodies(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})

	resp, _ := New(h, nil).Handle(context.Background(), v2Event(http.MethodGet, "/logo.png", ""))
	if !resp.IsBase64Encoded || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected base64 body, got %+v", resp)
	}
	decoded, _ := base64.StdEncoding.DecodeString(resp.Body)
	if string(decoded) != "\x89PNG" {
		t.Fatalf("unexpected decoded body %q", decoded)
	}
}

func TestNewRequestDefaults(t *testing.T) {
	req, err := NewRequest(context.Background(), events.APIGatewayV2HTTPRequest{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if req.Method != http.MethodGet || req.URL.Path != "/" {
		t.Fatalf("unexpected defaults %s %s", req.Method, req.URL.Path)
	}
}
