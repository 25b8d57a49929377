// Package view holds per-screen state: the current data of a screen together
// with its loading and error flags, updated once per fetch cycle.
package view

import (
	"sync"
	"time"
)

// Snapshot - согласованная копия состояния экрана на момент чтения.
type Snapshot[T any] struct {
	Data        T
	HasData     bool
	Loading     bool
	Err         error
	RefreshedAt time.Time
	Seq         uint64
}

// State - состояние одного экрана. Каждая загрузка получает номер через Begin;
// результат применяется, только если номер последний из выданных.
type State[T any] struct {
	mu sync.Mutex

	issued  uint64
	current Snapshot[T]
	now     func() time.Time
}

func NewState[T any]() *State[T] {
	return &State[T]{now: time.Now}
}

// Begin регистрирует новую загрузку и возвращает ее номер.
func (s *State[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	s.current.Loading = true
	return s.issued
}

// Commit заменяет данные экрана результатом загрузки seq.
// Возвращает false, если после seq уже была начата более новая загрузка.
func (s *State[T]) Commit(seq uint64, data T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued {
		return false
	}
	s.current = Snapshot[T]{
		Data:        data,
		HasData:     true,
		RefreshedAt: s.now(),
		Seq:         seq,
	}
	return true
}

// Fail переводит экран в состояние ошибки. Предыдущие данные сбрасываются.
func (s *State[T]) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued {
		return false
	}
	var zero T
	s.current = Snapshot[T]{
		Data:        zero,
		Err:         err,
		RefreshedAt: s.now(),
		Seq:         seq,
	}
	return true
}

// Read возвращает текущее состояние.
func (s *State[T]) Read() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Fresh возвращает текущее состояние и true, если данные есть и не старше maxAge.
func (s *State[T]) Fresh(maxAge time.Duration) (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := s.current.HasData && s.now().Sub(s.current.RefreshedAt) <= maxAge
	return s.current, fresh
}
