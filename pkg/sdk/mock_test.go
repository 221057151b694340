package nearby

import (
	"context"

	"github.com/kailas-cloud/nearby/internal/domain/mapview"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, query string) (viewuc.Snapshot, error)
	stopped  bool
}

func (m *mockSearchUC) Search(ctx context.Context, query string) (viewuc.Snapshot, error) {
	return m.searchFn(ctx, query)
}

func (m *mockSearchUC) Stop() { m.stopped = true }

// --- viewUseCase mock ---

type mockViewUC struct {
	snapshot     viewuc.Snapshot
	showInfoFn   func(id mapview.MarkerID) error
	showInfoAtFn func(index int) error
	showCenterFn func() error
}

func (m *mockViewUC) Snapshot() viewuc.Snapshot { return m.snapshot }

func (m *mockViewUC) ShowInfo(id mapview.MarkerID) error { return m.showInfoFn(id) }

func (m *mockViewUC) ShowInfoAt(index int) error { return m.showInfoAtFn(index) }

func (m *mockViewUC) ShowCenterInfo() error { return m.showCenterFn() }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, viewSvc viewUseCase, healthSvc healthUseCase) *Client {
	return &Client{
		searchSvc: searchSvc,
		viewSvc:   viewSvc,
		healthSvc: healthSvc,
	}
}
