package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("GET /cities", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var counter int32

	var wg sync.WaitGroup
	for _, key := range []string{"GET /cities", "GET /teams"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err, _ := g.Do(key, func() (any, error) {
				atomic.AddInt32(&counter, 1)
				return nil, nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}(key)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected both keys to run, got %d", got)
	}
}
