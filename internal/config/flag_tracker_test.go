package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagTracker_Basic(t *testing.T) {
	ft := NewFlagTracker()
	assert.False(t, ft.WasSet("top"))

	ft.Set("top")
	assert.True(t, ft.WasSet("top"))
	assert.Equal(t, 1, ft.Count())
}

func TestFlagTracker_WithInitialFlags(t *testing.T) {
	initial := map[string]bool{"top": true, "threshold": true, "json": false}
	ft := NewFlagTrackerWithFlags(initial)

	assert.True(t, ft.WasSet("top"))
	assert.True(t, ft.WasSet("threshold"))
	assert.False(t, ft.WasSet("json"))
	assert.Equal(t, 2, ft.Count())

	initial["dedupe"] = true
	assert.False(t, ft.WasSet("dedupe"))

	assert.NotPanics(t, func() { NewFlagTrackerWithFlags(nil).Set("x") })
}

func TestFlagTracker_NamesIsCopy(t *testing.T) {
	ft := NewFlagTracker()
	ft.Set("workers")

	names := ft.Names()
	names["extended"] = true
	assert.False(t, ft.WasSet("extended"))
}

func TestFlagTracker_ConcurrentReadWrite(t *testing.T) {
	ft := NewFlagTracker()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if j%2 == 0 {
					ft.Set("even")
				} else {
					ft.Set("odd")
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_ = ft.WasSet("even")
				_ = ft.Names()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ft.Count())
}

func TestFlagTracker_MergeMethods(t *testing.T) {
	ft := NewFlagTrackerWithFlags(map[string]bool{"explicit": true})

	assert.Equal(t, "override", ft.MergeString("base", "override", "explicit"))
	assert.Equal(t, "base", ft.MergeString("base", "override", "notset"))

	assert.Equal(t, 20, ft.MergeInt(10, 20, "explicit"))
	assert.Equal(t, 10, ft.MergeInt(10, 20, "notset"))

	assert.False(t, ft.MergeBool(true, false, "explicit"))
	assert.True(t, ft.MergeBool(true, false, "notset"))

	assert.Equal(t, 2.5, ft.MergeFloat64(1.5, 2.5, "explicit"))
	assert.Equal(t, 1.5, ft.MergeFloat64(1.5, 2.5, "notset"))

	assert.Equal(t, []string{"b"}, ft.MergeStringSlice([]string{"a"}, []string{"b"}, "explicit"))
	assert.Equal(t, []string{"a"}, ft.MergeStringSlice([]string{"a"}, nil, "explicit"))
	assert.Equal(t, []string{"a"}, ft.MergeStringSlice([]string{"a"}, []string{"b"}, "notset"))

	assert.Equal(t, []int64{7}, ft.MergeInt64Slice([]int64{512}, []int64{7}, "explicit"))
	assert.Equal(t, []int64{512}, ft.MergeInt64Slice([]int64{512}, []int64{7}, "notset"))
}
