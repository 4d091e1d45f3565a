// Package memstore хранит в памяти последний опубликованный снимок.
package memstore

import (
	"context"
	"sync/atomic"

	"gold_tracker/internal/domain/entity"
)

// Latest хранит один снимок. Читатели всегда видят снимок целиком:
// либо предыдущий, либо новый.
type Latest struct {
	current atomic.Pointer[entity.Snapshot]
}

func NewLatest() *Latest {
	return &Latest{}
}

// Store заменяет снимок. После вызова снимок менять нельзя.
func (l *Latest) Store(snapshot entity.Snapshot) {
	l.current.Store(&snapshot)
}

// Load возвращает снимок и false, если ещё ничего не опубликовано.
func (l *Latest) Load() (entity.Snapshot, bool) {
	snapshot := l.current.Load()
	if snapshot == nil {
		return entity.Snapshot{}, false
	}

	return *snapshot, true
}

func (l *Latest) Publish(_ context.Context, snapshot entity.Snapshot) error {
	l.Store(snapshot)

	return nil
}

// Ready сообщает, был ли опубликован хотя бы один снимок.
func (l *Latest) Ready() bool {
	return l.current.Load() != nil
}
