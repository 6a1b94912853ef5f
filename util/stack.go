package util

import "github.com/samber/mo"

// Stack is a LIFO list. When Limit is positive the oldest entries are
// dropped once it is exceeded.
type Stack[T any] struct {
	Limit int
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
	if s.Limit > 0 && len(s.items) > s.Limit {
		s.items = s.items[len(s.items)-s.Limit:]
	}
}

// Pop removes and returns the top entry.
func (s *Stack[T]) Pop() mo.Option[T] {
	top := s.Peek()
	if top.IsPresent() {
		s.items = s.items[:len(s.items)-1]
	}
	return top
}

func (s *Stack[T]) Peek() mo.Option[T] {
	if len(s.items) == 0 {
		return mo.None[T]()
	}
	return mo.Some(s.items[len(s.items)-1])
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
