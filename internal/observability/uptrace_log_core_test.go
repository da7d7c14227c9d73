package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http_request", map[string]any{"http_path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http_request", map[string]any{"http_path": "/v1/leagues/1/readiness"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("league readiness loaded", map[string]any{"http_path": "/healthz"}) {
		t.Fatalf("did not expect non-http_request event to be skipped")
	}
}

func TestBuildOTelLogAttributes_FromZapFields(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range []zap.Field{
		zap.String("league_id", "1180000000000000000"),
		zap.Int("week", 7),
		zap.Bool("preseason", false),
	} {
		f.AddTo(enc)
	}

	attrs := buildOTelLogAttributes(enc.Fields)
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	// sorted by key
	if attrs[0].Key != "league_id" || attrs[0].Value.AsString() != "1180000000000000000" {
		t.Fatalf("unexpected league_id attribute")
	}
	if attrs[1].Key != "preseason" || attrs[1].Value.AsBool() {
		t.Fatalf("unexpected preseason attribute")
	}
	if attrs[2].Key != "week" || attrs[2].Value.AsInt64() != 7 {
		t.Fatalf("unexpected week attribute")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"ok":         11,
		"incomplete": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if len(v.AsMap()) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(v.AsMap()))
	}
}

func TestOTelLogCore_RespectsLevel(t *testing.T) {
	core := newOTelLogCore("test", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled below warn")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error should be enabled")
	}
	if err := core.With([]zapcore.Field{zap.String("k", "v")}).Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
