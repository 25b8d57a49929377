package domain

import (
	"fmt"
	"time"
)

// Status - статус заявки на консультацию.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusContacted Status = "contacted"
)

// AllStatuses - все статусы в порядке отображения в админке.
var AllStatuses = []Status{StatusPending, StatusReviewed, StatusApproved, StatusRejected, StatusContacted}

// ParseStatus превращает строку в Status. Неизвестные значения отклоняются.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown consultation status %q", s))
}

// Service - тип услуги, на которую подана заявка.
type Service string

const (
	ServiceWebDevelopment        Service = "Web Development"
	ServiceMobileAppDevelopment  Service = "Mobile App Development"
	ServiceUIUXDesign            Service = "UI/UX Design"
	ServiceSoftwareConsulting    Service = "Software Consulting"
	ServiceDigitalTransformation Service = "Digital Transformation"
	ServiceCustomSoftware        Service = "Custom Software"
	ServiceOther                 Service = "Other"
)

var AllServices = []Service{
	ServiceWebDevelopment,
	ServiceMobileAppDevelopment,
	ServiceUIUXDesign,
	ServiceSoftwareConsulting,
	ServiceDigitalTransformation,
	ServiceCustomSoftware,
	ServiceOther,
}

func ParseService(s string) (Service, error) {
	for _, sv := range AllServices {
		if string(sv) == s {
			return sv, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown consultation service %q", s))
}

// Budget - бюджетный диапазон из формы заявки.
type Budget string

const (
	Budget5kTo15k    Budget = "$5,000 - $15,000"
	Budget15kTo50k   Budget = "$15,000 - $50,000"
	Budget50kTo100k  Budget = "$50,000 - $100,000"
	Budget100kPlus   Budget = "$100,000+"
	BudgetNotSureYet Budget = "Not sure yet"
)

var AllBudgets = []Budget{Budget5kTo15k, Budget15kTo50k, Budget50kTo100k, Budget100kPlus, BudgetNotSureYet}

func ParseBudget(s string) (Budget, error) {
	for _, b := range AllBudgets {
		if string(b) == s {
			return b, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown budget range %q", s))
}

// SentVia - канал, по которому ушло сообщение администратора.
type SentVia string

const (
	SentViaEmail     SentVia = "email"
	SentViaDashboard SentVia = "dashboard"
)

func ParseSentVia(s string) (SentVia, error) {
	switch SentVia(s) {
	case SentViaEmail, SentViaDashboard:
		return SentVia(s), nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown message channel %q", s))
}

// AdminMessage - сообщение администратора клиенту. Однажды отправленное, не меняется.
type AdminMessage struct {
	Message string
	SentBy  string
	SentAt  time.Time
	SentVia SentVia
}

// Consultation - заявка на консультацию.
type Consultation struct {
	ID             string
	ConsultationID string

	Name    string
	Email   string
	Phone   string
	Company string

	Service Service
	Budget  Budget // пустая строка, если бюджет не указан
	Message string

	Status        Status
	AdminNotes    string
	AdminMessages []AdminMessage

	SubmittedByIP        string
	SubmittedByUserAgent string
	LastStatusChange     *time.Time
	LastContacted        *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Pagination - пагинация, которую возвращает бэкенд заявок.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasNext     bool
	HasPrev     bool
	NextPage    *int
	PrevPage    *int
	Limit       int
}

// ConsultationStats - количество заявок в каждом статусе.
type ConsultationStats struct {
	Pending   int
	Reviewed  int
	Approved  int
	Rejected  int
	Contacted int
}

// ConsultationPage - страница заявок вместе с пагинацией и статистикой.
type ConsultationPage struct {
	Consultations []Consultation
	Pagination    Pagination
	Stats         ConsultationStats
}

// ConsultationWithTransitions - заявка вместе со статусами, в которые ее можно перевести.
type ConsultationWithTransitions struct {
	Consultation        Consultation
	AllowedNextStatuses []Status
}

// StatusUpdate - изменение статуса с необязательной заметкой.
type StatusUpdate struct {
	Status     Status
	AdminNotes *string
}
