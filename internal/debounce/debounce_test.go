package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_OnlyLastCallRuns(t *testing.T) {
	d := New(30 * time.Millisecond)

	var mu sync.Mutex
	var got []string
	for _, v := range []string{"l", "la", "lap", "lapt"} {
		v := v
		d.Call(func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"lapt"}, got)
}

func TestDebouncer_Stop(t *testing.T) {
	d := New(20 * time.Millisecond)
	fired := make(chan struct{}, 1)
	d.Call(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped call ran")
	case <-time.After(60 * time.Millisecond):
	}
}
