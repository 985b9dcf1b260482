package util

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// EnumSet interns strings as dense ints. It is safe for concurrent use;
// a Frozen set panics on Add.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Counts []int
	Frozen bool
}

func (e *EnumSet) RebuildIndex() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuildIndex()
}

func (e *EnumSet) rebuildIndex() {
	e.Index = make([]string, len(e.Enum))
	for k, v := range e.Enum {
		e.Index[v] = k
	}
	if len(e.Counts) != len(e.Index) {
		counts := make([]int, len(e.Index))
		copy(counts, e.Counts)
		e.Counts = counts
	}
}

// Add interns value, counting each occurrence. The bool is true when value
// was not seen before.
func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		e.Counts[enum]++
		return enum, false
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	e.Counts = append(e.Counts, 1)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 {
		panic("Negative index requested")
	}
	if len(e.Index) != len(e.Enum) {
		log.Println("Rebuilding index!")
		e.rebuildIndex()
	}
	if len(e.Index) <= index {
		panic("Unknown index requested: " + fmt.Sprintf("%v of %v", index, len(e.Index)))
	}
	return e.Index[index]
}

// Count returns how many times the value at index was added
func (e *EnumSet) Count(index int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.Counts) {
		return 0
	}
	return e.Counts[index]
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Sorted returns the interned values in lexical order
func (e *EnumSet) Sorted() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	values := make([]string, len(e.Index))
	copy(values, e.Index)
	sort.Strings(values)
	return values
}

func NewEnumSet(capacity int) *EnumSet {
	e := &EnumSet{
		Enum:   make(map[string]int, capacity),
		Index:  make([]string, 0, capacity),
		Counts: make([]int, 0, capacity),
	}
	return e
}
