package errors

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorCreation(t *testing.T) {
	err := E(Op("test.operation"), KindDatabase, "something failed")

	if err.Op != "test.operation" {
		t.Errorf("expected Op 'test.operation', got %q", err.Op)
	}
	if err.Kind != KindDatabase {
		t.Errorf("expected Kind KindDatabase, got %v", err.Kind)
	}
	if err.Msg != "something failed" {
		t.Errorf("expected Msg 'something failed', got %q", err.Msg)
	}
}

func TestErrorWithWrappedError(t *testing.T) {
	underlying := fmt.Errorf("no such file")
	err := E(Op("parser.Load"), KindNotFound, underlying, "document missing")

	if err.Err != underlying {
		t.Error("expected underlying error to be set")
	}

	errStr := err.Error()
	for _, want := range []string{"parser.Load", "document missing", "no such file"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("error string should contain %q, got %q", want, errStr)
		}
	}
}

func TestErrorStringFormats(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"op only", &Error{Op: "test"}, "test: "},
		{"msg only", &Error{Msg: "failed"}, "failed"},
		{"err only", &Error{Err: fmt.Errorf("root")}, "root"},
		{"op and msg", &Error{Op: "test", Msg: "failed"}, "test: failed"},
		{"all fields", &Error{Op: "test", Msg: "failed", Err: fmt.Errorf("root")}, "test: failed: root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown"},
		{KindDatabase, "database"},
		{KindSearch, "search"},
		{KindIO, "io"},
		{KindConfig, "config"},
		{KindNetwork, "network"},
		{KindParse, "parse"},
		{KindNotFound, "not found"},
		{KindMalformed, "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	notFound := Wrap("cli.load", E(Op("parser.Load"), KindNotFound, fmt.Errorf("stat failed")))
	if !Is(notFound, ErrDocumentNotFound) {
		t.Error("wrapped not-found error should match ErrDocumentNotFound")
	}
	if Is(notFound, ErrMalformedDocument) {
		t.Error("not-found error must not match ErrMalformedDocument")
	}

	malformed := fmt.Errorf("loading: %w", E(KindMalformed, "bad token"))
	if !Is(malformed, ErrMalformedDocument) {
		t.Error("fmt-wrapped malformed error should match ErrMalformedDocument")
	}

	if Is(E(KindIO, "disk"), &Error{Kind: KindIO, Op: "x"}) {
		t.Error("targets carrying an Op are not sentinels")
	}
}

func TestWrap(t *testing.T) {
	if Wrap("test", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	wrapped := Wrap("db.query", fmt.Errorf("test error"))
	appErr, ok := wrapped.(*Error)
	if !ok {
		t.Fatal("Wrap should return *Error")
	}
	if appErr.Op != "db.query" {
		t.Errorf("expected Op 'db.query', got %q", appErr.Op)
	}
}

func TestWrapMsg(t *testing.T) {
	if WrapMsg("test", "msg", nil) != nil {
		t.Error("WrapMsg(nil) should return nil")
	}

	wrapped := WrapMsg("db.query", "query failed", fmt.Errorf("test error"))
	if !strings.Contains(wrapped.Error(), "query failed") {
		t.Errorf("error should contain message, got %q", wrapped.Error())
	}
}

func TestGetKindWalksChain(t *testing.T) {
	err := Wrap("outer", E(KindNetwork, "inner"))
	if kind := GetKind(err); kind != KindNetwork {
		t.Errorf("expected KindNetwork, got %v", kind)
	}
	if !IsKind(err, KindNetwork) {
		t.Error("IsKind should see the inner kind")
	}
	if kind := GetKind(fmt.Errorf("standard error")); kind != KindUnknown {
		t.Errorf("expected KindUnknown for non-Error, got %v", kind)
	}
}

func TestSkipCounter(t *testing.T) {
	sc := NewSkipCounter("enrichment")

	sc.Skip(fmt.Errorf("error 1"), "F2")
	sc.Skip(fmt.Errorf("error 2"), "EGFR")

	if sc.Count != 2 {
		t.Errorf("expected count 2, got %d", sc.Count)
	}
	if sc.LastErr == nil || sc.LastErr.Error() != "error 2" {
		t.Errorf("LastErr should be last error, got %v", sc.LastErr)
	}
	if sc.LastDetail != "EGFR" {
		t.Errorf("LastDetail should be 'EGFR', got %q", sc.LastDetail)
	}
}

func TestSkipCounterReport(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	sc := NewSkipCounter("enrichment")
	sc.Report(logger)
	if logs.Len() != 0 {
		t.Fatalf("expected no log entries without skips, got %d", logs.Len())
	}

	sc.Skip(fmt.Errorf("err"), "detail")
	sc.Report(logger)
	if logs.Len() != 1 {
		t.Fatalf("expected one log entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["count"]; got != int64(1) {
		t.Errorf("expected count field 1, got %v", got)
	}

	// nil logger is a no-op
	sc.Report(nil)
}

func TestIgnoreError(t *testing.T) {
	IgnoreError(nil, fmt.Errorf("test"), "nil logger")
	IgnoreError(zap.NewNop(), nil, "nil error")
	IgnoreError(zap.NewNop(), fmt.Errorf("test"), "test reason")

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	IgnoreError(logger, nil, "nothing to log")
	IgnoreError(logger, fmt.Errorf("close failed"), "reload failed")
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["reason"]; got != "reload failed" {
		t.Errorf("logged reason %v", got)
	}
}
