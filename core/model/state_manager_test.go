package model

import (
	"sync"
	"testing"
)

func TestStateManagerLifecycle(t *testing.T) {
	sm := NewStateManager()

	if sm.IsFitted() {
		t.Error("new state manager must not be fitted")
	}
	if err := sm.RequireFitted(); err == nil {
		t.Error("RequireFitted must fail before SetFitted")
	}

	sm.SetDimensions(3, 100)
	sm.SetFitted()

	if !sm.IsFitted() {
		t.Error("expected fitted state")
	}
	if err := sm.RequireFitted(); err != nil {
		t.Errorf("RequireFitted after SetFitted: %v", err)
	}

	nFeatures, nSamples := sm.GetDimensions()
	if nFeatures != 3 || nSamples != 100 {
		t.Errorf("GetDimensions() = (%d, %d), want (3, 100)", nFeatures, nSamples)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("Reset must clear the fitted flag")
	}
	nFeatures, nSamples = sm.GetDimensions()
	if nFeatures != 0 || nSamples != 0 {
		t.Errorf("Reset must clear dimensions, got (%d, %d)", nFeatures, nSamples)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := NewStateManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sm.SetFitted()
			sm.SetDimensions(2, 10)
		}()
		go func() {
			defer wg.Done()
			sm.IsFitted()
			sm.GetDimensions()
		}()
	}
	wg.Wait()

	if !sm.IsFitted() {
		t.Error("expected fitted state after concurrent writes")
	}
}
