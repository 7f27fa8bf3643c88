package storage

import (
	"errors"
	"testing"
)

func TestScenarioCodecRoundTrip(t *testing.T) {
	input := sampleScenario("s1", "baseline")

	payload, err := EncodeScenario(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeScenario(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output != input {
		t.Fatalf("round trip mismatch: %+v vs %+v", output, input)
	}
}

func TestDecodeScenarioRejectsFutureVersions(t *testing.T) {
	input := sampleScenario("s1", "baseline")
	input.SchemaVersion = CurrentSchemaVersion + 1

	payload, err := EncodeScenario(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeScenario(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestDecodeScenarioRejectsGarbage(t *testing.T) {
	if _, err := DecodeScenario([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFactoryRejectsUnknownBackend(t *testing.T) {
	if _, err := NewStore("etcd", ""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestFactoryDefaultsToMemory(t *testing.T) {
	store, err := NewStore("", "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}
