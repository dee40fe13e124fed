package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderRecorder struct {
	mu      sync.Mutex
	renders []Render
	done    chan struct{}
	want    int
}

func newRenderRecorder(want int) *renderRecorder {
	return &renderRecorder{done: make(chan struct{}), want: want}
}

func (r *renderRecorder) sink(_ string, render Render) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, render)
	if len(r.renders) == r.want {
		close(r.done)
	}
}

func (r *renderRecorder) wait(t *testing.T) []Render {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d renders", r.want)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Render(nil), r.renders...)
}

func TestPollerEmitsLoadingThenContent(t *testing.T) {
	store, _ := newTestStore(t)
	added, err := store.Add(context.Background(), testOverview("Apple"))
	require.NoError(t, err)

	fetcher := &stubFetcher{payloads: map[string]any{
		"https://example.test/overview/AAPL": map[string]any{"Name": "Apple Inc."},
	}}
	recorder := newRenderRecorder(2)
	poller := NewPoller(PollerOptions{
		Store:     store,
		Fetcher:   fetcher,
		Endpoints: &stubEndpoints{},
		Sink:      recorder.sink,
	})
	defer poller.StopAll()

	poller.Start(added)
	renders := recorder.wait(t)

	assert.Equal(t, StateLoading, renders[0].State)
	assert.Equal(t, StateContent, renders[1].State)
}

func TestPollerStopInvalidatesInFlightFetch(t *testing.T) {
	store, _ := newTestStore(t)
	added, err := store.Add(context.Background(), testOverview("Apple"))
	require.NoError(t, err)

	release := make(chan struct{})
	fetcher := &blockingFetcher{release: release}
	recorder := newRenderRecorder(1)
	poller := NewPoller(PollerOptions{
		Store:     store,
		Fetcher:   fetcher,
		Endpoints: &stubEndpoints{},
		Sink:      recorder.sink,
	})
	defer poller.StopAll()

	poller.Start(added)
	recorder.wait(t) // the loading render

	poller.Stop(added.Meta().ID)
	close(release)

	// Give the in-flight fetch time to finish and be discarded.
	time.Sleep(50 * time.Millisecond)
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	assert.Len(t, recorder.renders, 1, "renders after Stop must be dropped")
}

type blockingFetcher struct {
	release chan struct{}
}

func (f *blockingFetcher) FetchJSON(ctx context.Context, _ string) (any, error) {
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return map[string]any{"Name": "Late"}, nil
}

func TestPollerStartAll(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Add(context.Background(), testOverview("Apple"))
	require.NoError(t, err)
	_, err = store.Add(context.Background(), testOverview("Also Apple"))
	require.NoError(t, err)

	fetcher := &stubFetcher{payloads: map[string]any{
		"https://example.test/overview/AAPL": map[string]any{"Name": "Apple Inc."},
	}}
	recorder := newRenderRecorder(4)
	poller := NewPoller(PollerOptions{
		Store:     store,
		Fetcher:   fetcher,
		Endpoints: &stubEndpoints{},
		Sink:      recorder.sink,
	})
	defer poller.StopAll()

	poller.StartAll()
	renders := recorder.wait(t)

	content := 0
	for _, render := range renders {
		if render.State == StateContent {
			content++
		}
	}
	assert.Equal(t, 2, content, "each widget fetches independently")
}
