package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Analyze_Success(t *testing.T) {
	var gotBody string
	var gotContentType string
	var gotMethod string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"status":"success","data":"{\"x\":1}"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)

	env, err := c.Analyze(context.Background(), Request{
		RawText:    strings.Repeat("a", 20),
		TargetLang: "es",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}
	if gotBody != `{"raw_text":"aaaaaaaaaaaaaaaaaaaa","target_lang":"es"}` {
		t.Errorf("unexpected request body: %s", gotBody)
	}
	if env.Status != StatusSuccess {
		t.Errorf("expected status %q, got %q", StatusSuccess, env.Status)
	}
	if string(env.Data) != `"{\"x\":1}"` {
		t.Errorf("unexpected data: %s", env.Data)
	}
}

func TestClient_Analyze_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"Upstream AI service is currently unreachable."}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)

	_, err := c.Analyze(context.Background(), Request{RawText: "some legal text here", TargetLang: "en"})
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
	if te.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", te.StatusCode)
	}
	if !strings.Contains(te.Body, "unreachable") {
		t.Errorf("expected body to be kept, got %q", te.Body)
	}
}

func TestClient_Analyze_AcceptsAny2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"status":"queued","data":""}`))
	}))
	defer server.Close()

	env, err := NewClient(server.URL, 0).Analyze(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Status != "queued" {
		t.Errorf("expected status 'queued', got %q", env.Status)
	}
}

func TestClient_Analyze_InvalidEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 0).Analyze(context.Background(), Request{})

	var ee *EnvelopeError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *EnvelopeError, got %T (%v)", err, err)
	}
}

func TestDecodeEnvelope_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus string
		wantData   string
		wantErr    bool
	}{
		{name: "success object", body: `{"status":"success","data":"{}"}`, wantStatus: "success", wantData: `"{}"`},
		{name: "number", body: `42`},
		{name: "string", body: `"str"`},
		{name: "array", body: `[]`},
		{name: "numeric status", body: `{"status":1,"data":"{}"}`, wantData: `"{}"`},
		{name: "null status", body: `{"status":null}`},
		{name: "empty object", body: `{}`},
		{name: "duplicate status last wins", body: `{"status":"success","status":"error"}`, wantStatus: "error"},
		{name: "null", body: `null`, wantErr: true},
		{name: "padded null", body: " null\n", wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "trailing garbage", body: `{"status":"success"} x`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope(strings.NewReader(tt.body))
			if tt.wantErr {
				var ee *EnvelopeError
				if !errors.As(err, &ee) {
					t.Fatalf("expected *EnvelopeError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if env.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, env.Status)
			}
			if string(env.Data) != tt.wantData {
				t.Errorf("expected data %q, got %q", tt.wantData, string(env.Data))
			}
		})
	}
}

func TestClient_Analyze_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, 0).Analyze(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error when server is down")
	}

	var te *TransportError
	if errors.As(err, &te) {
		t.Error("network failure should not be reported as a status error")
	}
}

func TestClient_Analyze_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, 0).Analyze(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	c := NewClient("", 0)

	if c.Endpoint() != DefaultEndpoint {
		t.Errorf("expected %q, got %q", DefaultEndpoint, c.Endpoint())
	}
}

func TestFormatPayload(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{
			name: "flat object",
			data: `"{\"x\":1}"`,
			want: "{\n  \"x\": 1\n}",
		},
		{
			name: "key order preserved",
			data: `"{\"summary\":\"ok\",\"risk_level\":\"low\",\"key_entities\":[\"A\",\"B\"]}"`,
			want: "{\n  \"summary\": \"ok\",\n  \"risk_level\": \"low\",\n  \"key_entities\": [\n    \"A\",\n    \"B\"\n  ]\n}",
		},
		{
			name: "surrounding whitespace",
			data: `"  [1]\n"`,
			want: "[\n  1\n]",
		},
		{
			name: "scalar",
			data: `"42"`,
			want: "42",
		},
		{
			name: "duplicate keys kept as sent",
			data: `"{\"a\":1,\"a\":2}"`,
			want: "{\n  \"a\": 1,\n  \"a\": 2\n}",
		},
		{
			name: "number spelling kept",
			data: `"{\"n\":1.0}"`,
			want: "{\n  \"n\": 1.0\n}",
		},
		{
			name:    "inner not json",
			data:    `"risk is high"`,
			wantErr: true,
		},
		{
			name:    "data not a string",
			data:    `{"x":1}`,
			wantErr: true,
		},
		{
			name:    "data missing",
			data:    ``,
			wantErr: true,
		},
		{
			name:    "data null",
			data:    `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Envelope{Status: StatusSuccess, Data: json.RawMessage(tt.data)}

			got, err := FormatPayload(env)
			if tt.wantErr {
				var pe *PayloadError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *PayloadError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
