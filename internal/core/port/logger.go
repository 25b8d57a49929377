package port

// Fields - структурированные поля записи лога.
type Fields map[string]interface{}

// LoggerPort - контракт логгера. Ядро не знает, куда уходят записи:
// в stdout, во Fluent Bit или сразу в оба места.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)

	// Error пишет ошибку вместе с объектом err (может быть nil).
	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields возвращает логгер, который добавляет fields к каждой записи.
	WithFields(fields Fields) LoggerPort
}
