package contracts

import (
	"dashboard-service/internal/core/domain"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateKeyFromPath(t *testing.T) {
	tests := map[string]string{
		"events/consultation-status-changed/v1.json": "ConsultationStatusChangedEvent/1.0.0",
		"events/market-snapshot-refreshed/v2.json":   "MarketSnapshotRefreshedEvent/2.0.0",
		"events/flat.json":                           "",
	}
	for path, want := range tests {
		if got := generateKeyFromPath(path); got != want {
			t.Errorf("generateKeyFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestAllPublishedEventsHaveSchemas(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	keys := Keys()
	sort.Strings(keys)

	for _, name := range []string{
		domain.EventConsultationStatusChanged,
		domain.EventConsultationNotesUpdated,
		domain.EventConsultationMessageSent,
		domain.EventConsultationDeleted,
		domain.EventMarketSnapshotRefreshed,
	} {
		key := name + "/" + domain.EventVersionV1
		if i := sort.SearchStrings(keys, key); i == len(keys) || keys[i] != key {
			t.Errorf("no schema for %s (have %v)", key, keys)
		}
	}
}

func TestValidateConsultationEvents(t *testing.T) {
	notes := "called back"
	valid := domain.NewConsultationEvent(domain.EventConsultationStatusChanged, "abc123")
	valid.PreviousStatus = domain.StatusPending
	valid.NewStatus = domain.StatusReviewed
	valid.AdminNotes = &notes

	body, _ := json.Marshal(valid)
	if err := ValidateEvent(valid.EventType, domain.EventVersionV1, body); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	missingStatus := domain.NewConsultationEvent(domain.EventConsultationStatusChanged, "abc123")
	body, _ = json.Marshal(missingStatus)
	if err := ValidateEvent(missingStatus.EventType, domain.EventVersionV1, body); err == nil {
		t.Fatal("event without statuses accepted")
	}

	emptyMessage := domain.NewConsultationEvent(domain.EventConsultationMessageSent, "abc123")
	body, _ = json.Marshal(emptyMessage)
	if err := ValidateEvent(emptyMessage.EventType, domain.EventVersionV1, body); err == nil {
		t.Fatal("message event without message accepted")
	}

	deleted := domain.NewConsultationEvent(domain.EventConsultationDeleted, "abc123")
	body, _ = json.Marshal(deleted)
	if err := ValidateEvent(deleted.EventType, domain.EventVersionV1, body); err != nil {
		t.Fatalf("deleted event rejected: %v", err)
	}
}

func TestValidateMarketSnapshotEvent(t *testing.T) {
	ev := domain.MarketSnapshotEvent{
		EventID:        uuid.New(),
		CapturedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		TotalMarketCap: 2.4e12,
		TotalVolume:    9e10,
		FearGreedIndex: 65,
		Sentiment:      domain.SentimentGreed,
		AssetsTracked:  50,
	}
	body, _ := json.Marshal(ev)
	if err := ValidateEvent(domain.EventMarketSnapshotRefreshed, domain.EventVersionV1, body); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}

	ev.FearGreedIndex = 120
	body, _ = json.Marshal(ev)
	if err := ValidateEvent(domain.EventMarketSnapshotRefreshed, domain.EventVersionV1, body); err == nil {
		t.Fatal("out of range index accepted")
	}
}

func TestValidateUnknownEvent(t *testing.T) {
	if err := ValidateEvent("NoSuchEvent", "1.0.0", []byte(`{}`)); err == nil {
		t.Fatal("unknown event accepted")
	}
	if err := ValidateEvent(domain.EventConsultationDeleted, domain.EventVersionV1, []byte(`{`)); err == nil {
		t.Fatal("invalid JSON accepted")
	}
}
