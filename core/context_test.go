package core

import (
	"sync"
	"testing"
)

func TestAnonymousName_UniqueUnderConcurrency(t *testing.T) {
	rctx := NewRunContext(nil)

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				name := rctx.AnonymousName()
				mu.Lock()
				if seen[name] {
					t.Errorf("Duplicate anonymous name %q", name)
				}
				seen[name] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 800 {
		t.Errorf("Expected 800 unique names, got %d", len(seen))
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != "(anonymous)" {
		t.Errorf("Expected (anonymous), got %q", got)
	}
	if got := DisplayName("Widget"); got != "Widget" {
		t.Errorf("Expected Widget, got %q", got)
	}
}

func TestNewRunContext_NilLogger(t *testing.T) {
	rctx := NewRunContext(nil)
	if rctx.Logger() == nil {
		t.Error("Expected no-op logger, got nil")
	}
}
