package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"championship", "Brasileirao-Serie-A", "round", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "championship" || attrs[0].Value.AsString() != "Brasileirao-Serie-A" {
		t.Fatalf("unexpected championship attribute")
	}
	if attrs[1].Key != "round" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected round attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"entries": 11,
		"final":   true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}
