package registry

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Fold normalizes identifiers and names for case-insensitive comparison
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// sequence issues prefixed ids from a counter that never goes back
type sequence struct {
	prefix string
	next   int
}

func newSequence(prefix string, next int) sequence {
	if next < 1 {
		next = 1
	}
	return sequence{prefix: prefix, next: next}
}

// observe moves the counter past an id restored from storage
func (s *sequence) observe(id string) {
	if !strings.HasPrefix(strings.ToUpper(id), s.prefix) {
		return
	}
	n, err := strconv.Atoi(id[len(s.prefix):])
	if err == nil && n >= s.next {
		s.next = n + 1
	}
}

func (s *sequence) issue() string {
	id := fmt.Sprintf("%s%d", s.prefix, s.next)
	s.next++
	return id
}

// list keeps entities in insertion order with a folded-id index
type list[T any] struct {
	items []*T
	index map[string]int
	idOf  func(*T) string
}

func newList[T any](idOf func(*T) string) list[T] {
	return list[T]{index: make(map[string]int), idOf: idOf}
}

func (l *list[T]) add(item *T) error {
	key := Fold(l.idOf(item))
	if _, exists := l.index[key]; exists {
		return fmt.Errorf("duplicate id %q", l.idOf(item))
	}
	l.index[key] = len(l.items)
	l.items = append(l.items, item)
	return nil
}

func (l *list[T]) get(id string) (*T, bool) {
	pos, ok := l.index[Fold(id)]
	if !ok {
		return nil, false
	}
	return l.items[pos], true
}

func (l *list[T]) remove(id string) (*T, bool) {
	key := Fold(id)
	pos, ok := l.index[key]
	if !ok {
		return nil, false
	}
	removed := l.items[pos]
	l.items = append(l.items[:pos], l.items[pos+1:]...)
	delete(l.index, key)
	for i := pos; i < len(l.items); i++ {
		l.index[Fold(l.idOf(l.items[i]))] = i
	}
	return removed, true
}

// all returns a fresh slice so callers may iterate while the list changes
func (l *list[T]) all() []*T {
	out := make([]*T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *list[T]) len() int {
	return len(l.items)
}
