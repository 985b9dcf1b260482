package util

import (
	"reflect"
	"sync"
	"testing"
)

func TestEnumSet(t *testing.T) {
	e := NewEnumSet(4)
	first, isNew := e.Add("shift")
	if first != 0 || !isNew {
		t.Error("Expected new value at 0, got", first, isNew)
	}
	e.Add("reduceUpHat(NP)")
	again, isNew := e.Add("shift")
	if again != 0 || isNew {
		t.Error("Expected existing value at 0, got", again, isNew)
	}
	if e.Len() != 2 {
		t.Error("Expected 2 values, got", e.Len())
	}
	if e.Count(0) != 2 || e.Count(1) != 1 || e.Count(5) != 0 {
		t.Error("Wrong counts", e.Counts)
	}
	if e.ValueOf(1) != "reduceUpHat(NP)" {
		t.Error("Wrong value at 1", e.ValueOf(1))
	}
	if index, exists := e.IndexOf("reduceUpHat(NP)"); !exists || index != 1 {
		t.Error("Wrong index", index, exists)
	}
	if !reflect.DeepEqual(e.Sorted(), []string{"reduceUpHat(NP)", "shift"}) {
		t.Error("Wrong sort order", e.Sorted())
	}
}

func TestEnumSetRebuildIndex(t *testing.T) {
	e := NewEnumSet(2)
	e.Enum["b"] = 1
	e.Enum["a"] = 0
	e.RebuildIndex()
	if e.ValueOf(0) != "a" || e.ValueOf(1) != "b" || len(e.Counts) != 2 {
		t.Error("Index not rebuilt", e.Index, e.Counts)
	}
}

func TestEnumSetFrozen(t *testing.T) {
	e := NewEnumSet(1)
	e.Frozen = true
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic adding to a frozen set")
		}
	}()
	e.Add("shift")
}

func TestEnumSetConcurrent(t *testing.T) {
	e := NewEnumSet(10)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, v := range []string{"a", "b", "c", "a"} {
				e.Add(v)
			}
		}()
	}
	wg.Wait()
	if e.Len() != 3 {
		t.Error("Expected 3 values, got", e.Len())
	}
	if index, _ := e.IndexOf("a"); e.Count(index) != 16 {
		t.Error("Expected 16 adds of a, got", e.Count(index))
	}
}
