package constants

// Обменник событий сервиса
const (
	DashboardExchange     = "dashboard_exchange"
	DashboardExchangeType = "topic"
)

// Ключи маршрутизации
const (
	ConsultationStatusChangedRoutingKey = "consultation.status_changed"
	ConsultationNotesUpdatedRoutingKey  = "consultation.notes_updated"
	ConsultationMessageSentRoutingKey   = "consultation.message_sent"
	ConsultationDeletedRoutingKey       = "consultation.deleted"
	MarketSnapshotRefreshedRoutingKey   = "market.snapshot_refreshed"
)
