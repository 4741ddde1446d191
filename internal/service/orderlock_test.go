package service

import (
	"sync"
	"testing"
)

func TestOrderLocksSerializePerOrder(t *testing.T) {
	locks := newOrderLocks()

	var mu sync.Mutex
	counters := map[uint]int{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		orderID := uint(i % 5)
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			locks.Lock(id)
			defer locks.Unlock(id)
			mu.Lock()
			counters[id]++
			mu.Unlock()
		}(orderID)
	}
	wg.Wait()

	for id, count := range counters {
		if count != 10 {
			t.Fatalf("order %d expected 10 entries, got %d", id, count)
		}
	}

	locks.mu.Lock()
	remaining := len(locks.locks)
	locks.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected lock table to be reclaimed, %d entries left", remaining)
	}
}

func TestOrderLocksIndependentOrders(t *testing.T) {
	locks := newOrderLocks()
	locks.Lock(1)

	done := make(chan struct{})
	go func() {
		locks.Lock(2)
		locks.Unlock(2)
		close(done)
	}()
	<-done // 另一订单的锁不受影响

	locks.Unlock(1)
}
