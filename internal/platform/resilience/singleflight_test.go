package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var calls int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("standings/now", func() (any, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(20 * time.Millisecond)
				return 32, nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != 32 {
				t.Errorf("unexpected value %v", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunSeparately(t *testing.T) {
	var g SingleFlight
	var calls int32

	for i := 0; i < 3; i++ {
		_, _, shared := g.Do("roster/TOR", func() (any, error) {
			atomic.AddInt32(&calls, 1)
			return nil, nil
		})
		if shared {
			t.Fatalf("call %d should not be shared", i)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected three upstream calls, got %d", got)
	}
}
