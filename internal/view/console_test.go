package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/valpere/nyaya/internal/analyzer"
	"github.com/valpere/nyaya/internal/controller"
)

type stubTransport struct {
	env *analyzer.Envelope
	err error
}

func (s stubTransport) Analyze(context.Context, analyzer.Request) (*analyzer.Envelope, error) {
	return s.env, s.err
}

func TestConsole_Success(t *testing.T) {
	var out, status bytes.Buffer
	v := NewConsole(&out, &status)
	c := controller.New(stubTransport{env: &analyzer.Envelope{Status: "success", Data: []byte(`"{\"x\":1}"`)}}, v)

	if _, err := c.Submit(context.Background(), strings.Repeat("a", 20), "es"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "{\n  \"x\": 1\n}\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
	if !strings.Contains(status.String(), controller.BusyLabel) {
		t.Errorf("expected busy label on status stream, got %q", status.String())
	}
	if v.Busy() {
		t.Error("expected idle after submit")
	}
	if v.Label() != controller.IdleLabel {
		t.Errorf("expected label %q, got %q", controller.IdleLabel, v.Label())
	}
}

func TestConsole_Notice(t *testing.T) {
	var out, status bytes.Buffer
	v := NewConsole(&out, &status)
	c := controller.New(stubTransport{}, v)

	if _, err := c.Submit(context.Background(), "tiny", "en"); err == nil {
		t.Fatal("expected validation error")
	}

	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
	if strings.TrimSpace(status.String()) != controller.NoticeTooShort {
		t.Errorf("expected notice, got %q", status.String())
	}
}

func TestConsole_Failure(t *testing.T) {
	var out, status bytes.Buffer
	v := NewConsole(&out, &status)
	c := controller.New(stubTransport{err: &analyzer.TransportError{StatusCode: 502}}, v)

	if _, err := c.Submit(context.Background(), strings.Repeat("a", 20), "en"); err == nil {
		t.Fatal("expected error")
	}

	if strings.TrimSpace(out.String()) != controller.MessageConnectionFailed {
		t.Errorf("expected connection failure message, got %q", out.String())
	}
	if strings.Contains(out.String(), "502") {
		t.Error("status code should not be shown to the user")
	}
	if v.Busy() || v.Label() != controller.IdleLabel {
		t.Error("expected idle after failure")
	}
}
