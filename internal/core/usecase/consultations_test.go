package usecase

import (
	"context"
	"dashboard-service/internal/core/domain"
	"errors"
	"testing"
	"time"
)

func consultation(id string, status domain.Status) domain.Consultation {
	return domain.Consultation{
		ID:             id,
		ConsultationID: "CONS-" + id,
		Name:           "Client " + id,
		Email:          id + "@example.com",
		Service:        domain.ServiceWebDevelopment,
		Status:         status,
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	tests := []struct {
		name    string
		current domain.Status
		target  string
	}{
		{"terminal approved", domain.StatusApproved, "pending"},
		{"terminal rejected", domain.StatusRejected, "approved"},
		{"backwards", domain.StatusContacted, "reviewed"},
		{"same status", domain.StatusPending, "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend(consultation("1", tt.current))
			events := &fakeConsultationEvents{}
			uc := NewUpdateConsultationStatusUseCase(backend, events)

			_, err := uc.Execute(context.Background(), "1", tt.target, nil)
			if domain.KindOf(err) != domain.KindInvalidTransition {
				t.Fatalf("kind = %v, want invalid transition (err %v)", domain.KindOf(err), err)
			}
			if msg := domain.UserMessage(err, ""); msg != domain.MsgStatusUpdateFailed {
				t.Fatalf("message = %q", msg)
			}
			if len(backend.statusCalls) != 0 {
				t.Fatalf("PATCH sent for illegal transition: %+v", backend.statusCalls)
			}
			if len(events.events) != 0 {
				t.Fatal("event published for illegal transition")
			}
			if backend.records["1"].Status != tt.current {
				t.Fatal("record mutated")
			}
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	backend := newFakeBackend(consultation("1", domain.StatusPending))
	uc := NewUpdateConsultationStatusUseCase(backend, nil)

	_, err := uc.Execute(context.Background(), "1", "archived", nil)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("kind = %v, want validation", domain.KindOf(err))
	}
	if len(backend.statusCalls) != 0 {
		t.Fatal("PATCH sent for unknown status")
	}
}

func TestUpdateStatusAppliesLegalTransition(t *testing.T) {
	backend := newFakeBackend(consultation("1", domain.StatusPending))
	events := &fakeConsultationEvents{}
	uc := NewUpdateConsultationStatusUseCase(backend, events)

	notes := "called the client"
	res, err := uc.Execute(context.Background(), "1", "reviewed", &notes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Consultation.Status != domain.StatusReviewed {
		t.Fatalf("status = %s", res.Consultation.Status)
	}
	want := []domain.Status{domain.StatusContacted, domain.StatusApproved, domain.StatusRejected}
	if len(res.AllowedNextStatuses) != len(want) {
		t.Fatalf("allowed = %v, want %v", res.AllowedNextStatuses, want)
	}
	for i := range want {
		if res.AllowedNextStatuses[i] != want[i] {
			t.Fatalf("allowed = %v, want %v", res.AllowedNextStatuses, want)
		}
	}

	if len(backend.statusCalls) != 1 || *backend.statusCalls[0].AdminNotes != notes {
		t.Fatalf("status calls = %+v", backend.statusCalls)
	}
	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	ev := events.events[0]
	if ev.EventType != domain.EventConsultationStatusChanged ||
		ev.PreviousStatus != domain.StatusPending || ev.NewStatus != domain.StatusReviewed {
		t.Fatalf("event = %+v", ev)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	backend := newFakeBackend(consultation("1", domain.StatusPending))
	events := &fakeConsultationEvents{err: errors.New("broker down")}

	if _, err := NewUpdateConsultationNotesUseCase(backend, events).Execute(context.Background(), "1", "vip"); err != nil {
		t.Fatalf("notes update failed: %v", err)
	}
	if backend.records["1"].AdminNotes != "vip" {
		t.Fatal("notes not saved")
	}
}

func TestSendAdminMessage(t *testing.T) {
	backend := newFakeBackend(consultation("1", domain.StatusContacted))
	events := &fakeConsultationEvents{}
	uc := NewSendAdminMessageUseCase(backend, events)

	if _, err := uc.Execute(context.Background(), "1", "   "); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("empty message: kind = %v", domain.KindOf(err))
	}
	if len(backend.messageCalls) != 0 {
		t.Fatal("empty message sent to backend")
	}

	res, err := uc.Execute(context.Background(), "1", " Hello ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.AdminMessages) != 1 || res.AdminMessages[0].Message != "Hello" {
		t.Fatalf("messages = %+v", res.AdminMessages)
	}
	if len(events.events) != 1 || events.events[0].Message != "Hello" {
		t.Fatalf("events = %+v", events.events)
	}
}

func TestDeleteConsultation(t *testing.T) {
	backend := newFakeBackend(consultation("1", domain.StatusRejected))
	events := &fakeConsultationEvents{}

	if err := NewDeleteConsultationUseCase(backend, events).Execute(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "1" {
		t.Fatalf("deleted = %v", backend.deleted)
	}
	if len(events.events) != 1 || events.events[0].EventType != domain.EventConsultationDeleted {
		t.Fatalf("events = %+v", events.events)
	}
}

func TestGetConsultationNotFound(t *testing.T) {
	uc := NewGetConsultationUseCase(newFakeBackend())

	_, err := uc.Execute(context.Background(), "missing")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want not found", domain.KindOf(err))
	}
}

func TestListConsultationsResortsLocally(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := consultation("a", domain.StatusPending)
	a.Name = "zoe"
	a.CreatedAt = base
	b := consultation("b", domain.StatusReviewed)
	b.Name = "Adam"
	b.CreatedAt = base.Add(time.Hour)

	backend := newFakeBackend()
	backend.page = &domain.ConsultationPage{
		Consultations: []domain.Consultation{a, b},
		Pagination:    domain.Pagination{CurrentPage: 2, TotalPages: 5, TotalItems: 42, Limit: 2},
		Stats:         domain.ConsultationStats{Pending: 10, Reviewed: 32},
	}

	q := domain.DefaultConsultationQuery()
	q.SortBy = domain.ConsultationSortName
	q.SortOrder = domain.SortAsc
	q.Page = 2
	q.PageSize = 2

	page, err := NewListConsultationsUseCase(backend).Execute(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Consultations) != 2 || page.Consultations[0].ID != "b" {
		t.Fatalf("order = %+v", page.Consultations)
	}
	if page.Pagination.TotalItems != 42 || page.Stats.Reviewed != 32 {
		t.Fatalf("backend pagination or stats lost: %+v %+v", page.Pagination, page.Stats)
	}
}
