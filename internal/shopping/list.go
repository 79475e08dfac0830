// Package shopping holds the deduplicated ingredient list a session builds up.
package shopping

// List is an insertion-ordered set of ingredient names. Names are compared
// exactly; no case folding or trimming is applied. The zero value is an
// empty list ready to use.
type List struct {
	items []string
	index map[string]struct{}
}

// NewList returns a list holding the given names with duplicates dropped.
func NewList(names ...string) *List {
	l := &List{}
	l.Add(names...)
	return l
}

// Add unions names into the list and returns how many were new.
func (l *List) Add(names ...string) int {
	if l.index == nil {
		l.index = make(map[string]struct{}, len(names))
	}
	added := 0
	for _, n := range names {
		if _, ok := l.index[n]; ok {
			continue
		}
		l.index[n] = struct{}{}
		l.items = append(l.items, n)
		added++
	}
	return added
}

// Remove deletes name from the list. Removing an absent name is a no-op and
// reports false.
func (l *List) Remove(name string) bool {
	if _, ok := l.index[name]; !ok {
		return false
	}
	delete(l.index, name)
	for i, n := range l.items {
		if n == name {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether name is in the list.
func (l *List) Contains(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Len returns the number of names in the list.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the names in insertion order.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	if l == nil {
		return &List{}
	}
	return NewList(l.items...)
}
