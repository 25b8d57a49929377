package usecase

import (
	"context"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"sync"
	"sync/atomic"
	"time"
)

type fakeMarketData struct {
	assets   []domain.Asset
	global   domain.GlobalStats
	trending int

	marketsErr error
	globalErr  error

	// onMarkets вызывается внутри FetchMarkets
	onMarkets func()

	marketsCalls atomic.Int32
	lastRequest  domain.MarketsRequest
	mu           sync.Mutex
}

func (f *fakeMarketData) FetchMarkets(ctx context.Context, req domain.MarketsRequest) ([]domain.Asset, error) {
	f.marketsCalls.Add(1)
	f.mu.Lock()
	f.lastRequest = req
	f.mu.Unlock()
	if f.onMarkets != nil {
		f.onMarkets()
	}
	if f.marketsErr != nil {
		return nil, f.marketsErr
	}
	return f.assets, nil
}

func (f *fakeMarketData) FetchGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	if f.globalErr != nil {
		return nil, f.globalErr
	}
	g := f.global
	return &g, nil
}

func (f *fakeMarketData) FetchTrendingCount(ctx context.Context) (int, error) {
	return f.trending, nil
}

func (f *fakeMarketData) FetchAssetDetail(ctx context.Context, id string) (*domain.AssetDetail, error) {
	return &domain.AssetDetail{ID: id}, nil
}

func (f *fakeMarketData) FetchAssetChart(ctx context.Context, id string, days int) (*domain.AssetChart, error) {
	return &domain.AssetChart{AssetID: id, Days: days}, nil
}

type fakeSnapshots struct {
	saved []domain.MarketSnapshot
}

func (f *fakeSnapshots) SaveSnapshot(ctx context.Context, s domain.MarketSnapshot) error {
	f.saved = append(f.saved, s)
	return nil
}

type fakeHistory struct {
	points []domain.SeriesPoint
	err    error
}

func (f *fakeHistory) DailySeries(ctx context.Context, from, to time.Time) ([]domain.SeriesPoint, error) {
	return f.points, f.err
}

type fakeMarketEvents struct {
	events []domain.MarketSnapshotEvent
}

func (f *fakeMarketEvents) PublishSnapshotRefreshed(ctx context.Context, e domain.MarketSnapshotEvent) error {
	f.events = append(f.events, e)
	return nil
}

// fakeBackend хранит заявки в памяти и запоминает вызовы мутаций.
type fakeBackend struct {
	records map[string]domain.Consultation
	page    *domain.ConsultationPage
	err     error

	statusCalls  []domain.StatusUpdate
	notesCalls   []string
	messageCalls []string
	deleted      []string
}

func newFakeBackend(records ...domain.Consultation) *fakeBackend {
	b := &fakeBackend{records: make(map[string]domain.Consultation)}
	for _, r := range records {
		b.records[r.ID] = r
	}
	return b
}

func (b *fakeBackend) ListConsultations(ctx context.Context, q domain.ConsultationQuery) (*domain.ConsultationPage, error) {
	if b.err != nil {
		return nil, b.err
	}
	p := *b.page
	p.Consultations = append([]domain.Consultation(nil), b.page.Consultations...)
	return &p, nil
}

func (b *fakeBackend) GetConsultation(ctx context.Context, id string) (*domain.Consultation, error) {
	if b.err != nil {
		return nil, b.err
	}
	c, ok := b.records[id]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, domain.MsgConsultationNotFound, nil)
	}
	return &c, nil
}

func (b *fakeBackend) UpdateNotes(ctx context.Context, id string, notes string) (*domain.Consultation, error) {
	b.notesCalls = append(b.notesCalls, notes)
	c := b.records[id]
	c.AdminNotes = notes
	b.records[id] = c
	return &c, nil
}

func (b *fakeBackend) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Consultation, error) {
	b.statusCalls = append(b.statusCalls, update)
	c := b.records[id]
	c.Status = update.Status
	if update.AdminNotes != nil {
		c.AdminNotes = *update.AdminNotes
	}
	b.records[id] = c
	return &c, nil
}

func (b *fakeBackend) SendMessage(ctx context.Context, id string, message string) (*domain.Consultation, error) {
	b.messageCalls = append(b.messageCalls, message)
	c := b.records[id]
	c.AdminMessages = append(c.AdminMessages, domain.AdminMessage{Message: message, SentVia: domain.SentViaDashboard})
	b.records[id] = c
	return &c, nil
}

func (b *fakeBackend) DeleteConsultation(ctx context.Context, id string) error {
	if b.err != nil {
		return b.err
	}
	b.deleted = append(b.deleted, id)
	delete(b.records, id)
	return nil
}

type fakeConsultationEvents struct {
	events []domain.ConsultationEvent
	err    error
}

func (f *fakeConsultationEvents) PublishConsultationEvent(ctx context.Context, e domain.ConsultationEvent) error {
	f.events = append(f.events, e)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)                {}
func (nopLogger) Warn(string, port.Fields)                {}
func (nopLogger) Error(string, error, port.Fields)        {}
func (nopLogger) Debug(string, port.Fields)               {}
func (l nopLogger) WithFields(port.Fields) port.LoggerPort { return l }
