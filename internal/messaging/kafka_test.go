package messaging

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestHeaderCarrier(t *testing.T) {
	msg := &kafka.Message{}
	carrier := headerCarrier{msg: msg}

	if got := carrier.Get("traceparent"); got != "" {
		t.Errorf("expected empty value for missing key, got %q", got)
	}

	carrier.Set("traceparent", "00-abc-def-01")
	if got := carrier.Get("traceparent"); got != "00-abc-def-01" {
		t.Errorf("expected stored value, got %q", got)
	}

	carrier.Set("traceparent", "00-abc-def-02")
	if got := carrier.Get("traceparent"); got != "00-abc-def-02" {
		t.Errorf("expected overwritten value, got %q", got)
	}
	if len(msg.Headers) != 1 {
		t.Errorf("overwriting a key must not duplicate headers, got %d", len(msg.Headers))
	}

	carrier.Set("baggage", "k=v")
	keys := carrier.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
}
