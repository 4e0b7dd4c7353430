package syncutil_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/httpmsg/internal/syncutil"
)

func TestRWMap(t *testing.T) {
	t.Parallel()

	m := syncutil.NewRWMap(map[string]int{"b": 2})
	m.Set("a", 1).Set("c", 3).Del("c")

	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Errorf("m.Get(\"a\") = (%v, %v), want (1, true)", v, ok)
	}
	if m.Has("c") {
		t.Error("m.Has(\"c\") = true, want false")
	}
	if diff := cmp.Diff(m.SortedKeys(strings.Compare), []string{"a", "b"}); diff != "" {
		t.Errorf("m.SortedKeys() diff (-got +want):\n%v", diff)
	}
}

func TestRWMap_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		m  syncutil.RWMap[int, int]
		wg sync.WaitGroup
	)
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Set(i, i*i)
			m.Get(i)
		}()
	}
	wg.Wait()

	if v, ok := m.Get(7); !ok || v != 49 {
		t.Errorf("m.Get(7) = (%v, %v), want (49, true)", v, ok)
	}

	var nilMap *syncutil.RWMap[int, int]
	if _, ok := nilMap.Get(1); ok {
		t.Error("nilMap.Get(1) ok = true, want false")
	}
}
