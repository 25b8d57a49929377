package consultation_api_client

import "time"

type errorItem struct {
	Msg string `json:"msg"`
}

// envelope - общий вид ответа бэкенда заявок. Data разбирается отдельно.
type envelope[T any] struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  []errorItem `json:"errors"`
	Data    T           `json:"data"`
}

type adminMessageDTO struct {
	Message string    `json:"message"`
	SentBy  string    `json:"sent_by"`
	SentAt  time.Time `json:"sent_at"`
	SentVia string    `json:"sent_via"`
}

type consultationDTO struct {
	ID             string `json:"_id"`
	ConsultationID string `json:"consultation_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Service        string `json:"service"`
	Budget         string `json:"budget"`
	Message        string `json:"message"`

	Status        string            `json:"status"`
	AdminNotes    string            `json:"admin_notes"`
	AdminMessages []adminMessageDTO `json:"admin_messages"`

	SubmittedByIP        string     `json:"submitted_by_ip"`
	SubmittedByUserAgent string     `json:"submitted_by_user_agent"`
	LastStatusChange     *time.Time `json:"last_status_change"`
	LastContacted        *time.Time `json:"last_contacted"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type paginationDTO struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
	NextPage    *int `json:"next_page"`
	PrevPage    *int `json:"prev_page"`
	Limit       int  `json:"limit"`
}

type statsDTO struct {
	Pending   int `json:"pending"`
	Reviewed  int `json:"reviewed"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Contacted int `json:"contacted"`
}

type listData struct {
	Consultations []consultationDTO `json:"consultations"`
	Pagination    paginationDTO     `json:"pagination"`
	Stats         statsDTO          `json:"stats"`
}

type singleData struct {
	Consultation consultationDTO `json:"consultation"`
}

type updateNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

type updateStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}
