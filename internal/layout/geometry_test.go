package layout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Shrink(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		e    Edges
		want Rect
	}{
		{"no padding", Rect{1, 2, 30, 40}, Edges{}, Rect{1, 2, 30, 40}},
		{"uniform", Rect{0, 0, 30, 40}, Edges{5, 5, 5, 5}, Rect{5, 5, 20, 30}},
		{"clamps width", Rect{0, 0, 8, 40}, Edges{Left: 5, Right: 5}, Rect{5, 0, 0, 40}},
		{"clamps height", Rect{0, 0, 30, 10}, Edges{Top: 21, Bottom: 5}, Rect{0, 21, 30, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Shrink(tt.e))
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	assert.True(t, a.Overlaps(Rect{5, 5, 10, 10}))
	assert.False(t, a.Overlaps(Rect{10, 0, 10, 10}), "touching edges do not overlap")
	assert.False(t, a.Overlaps(Rect{0, 10, 10, 10}))
	assert.False(t, Rect{0, 0, 10, 1}.Empty())
	assert.True(t, Rect{0, 0, 0, 5}.Empty())
	assert.Equal(t, "10x10+0+0", a.String())
}

func TestEdges_Sums(t *testing.T) {
	e := Edges{Top: 21, Right: 5, Bottom: 5, Left: 4}
	assert.Equal(t, 9, e.Horizontal())
	assert.Equal(t, 26, e.Vertical())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.Register(id, "http://host/x")
			_, _ = r.Lookup(id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, r.Len())

	r.Unregister(3)
	_, ok := r.Lookup(3)
	assert.False(t, ok)
	assert.Equal(t, 15, r.Len())
}
