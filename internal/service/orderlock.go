package service

import "sync"

// orderLocks 按订单 ID 串行化保存与核帐操作
type orderLocks struct {
	mu    sync.Mutex
	locks map[uint]*orderLockEntry
}

type orderLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[uint]*orderLockEntry)}
}

// Lock 获取指定订单的互斥锁
func (l *orderLocks) Lock(orderID uint) {
	l.mu.Lock()
	entry, ok := l.locks[orderID]
	if !ok {
		entry = &orderLockEntry{}
		l.locks[orderID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock 释放指定订单的互斥锁，无持有者时回收条目
func (l *orderLocks) Unlock(orderID uint) {
	l.mu.Lock()
	entry, ok := l.locks[orderID]
	if ok {
		entry.refs--
		if entry.refs <= 0 {
			delete(l.locks, orderID)
		}
	}
	l.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
