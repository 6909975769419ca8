package layout

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// -- Presentation fakes --

// fakeElement records the last geometry pushed to it.
type fakeElement struct {
	visible       bool
	x, y          int
	width, height int
	calls         int
}

func (e *fakeElement) Show(visible bool) { e.visible = visible; e.calls++ }
func (e *fakeElement) Move(x, y int)     { e.x, e.y = x, y; e.calls++ }
func (e *fakeElement) Resize(w, h int)   { e.width, e.height = w, h; e.calls++ }

type fakeTitle struct {
	visible bool
	width   int
}

func (t *fakeTitle) Show(visible bool) { t.visible = visible }
func (t *fakeTitle) SetWidth(w int)    { t.width = w }

// fakePresenter serves elements from maps; a missing key means "no node".
type fakePresenter struct {
	titles map[int]*fakeTitle
	outers map[int]*fakeElement
	inners map[int]*fakeElement
}

func newFakePresenter(ids ...int) *fakePresenter {
	p := &fakePresenter{
		titles: make(map[int]*fakeTitle),
		outers: make(map[int]*fakeElement),
		inners: make(map[int]*fakeElement),
	}
	for _, id := range ids {
		p.titles[id] = &fakeTitle{}
		p.outers[id] = &fakeElement{}
		p.inners[id] = &fakeElement{}
	}
	return p
}

func (p *fakePresenter) Title(id int) (TitleBar, bool) {
	t, ok := p.titles[id]
	if !ok {
		return nil, false
	}
	return t, true
}

func (p *fakePresenter) Outer(id int) (Element, bool) {
	e, ok := p.outers[id]
	if !ok {
		return nil, false
	}
	return e, true
}

func (p *fakePresenter) Inner(id int) (Element, bool) {
	e, ok := p.inners[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// -- Fetcher Mock --

// MockFetcher mocks the Fetcher interface.
type MockFetcher struct {
	mock.Mock
	mu sync.Mutex
}

// Reload mocks a content reload request.
func (m *MockFetcher) Reload(ctx context.Context, id int, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := m.Called(ctx, id, url)
	return args.Error(0)
}
