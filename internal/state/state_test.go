// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package state

import (
	"testing"
	"time"
)

func TestGetAndSet(t *testing.T) {
	s := New()

	if got := s.Get(DomainPosts); got != nil {
		t.Errorf("initial posts = %v, want nil", got)
	}

	posts := []string{"a", "b"}
	s.Set(DomainPosts, posts)

	got, ok := s.Get(DomainPosts).([]string)
	if !ok || len(got) != 2 {
		t.Errorf("Get(posts) = %v, want %v", s.Get(DomainPosts), posts)
	}
}

func TestGetAbsentKey(t *testing.T) {
	s := New()
	if got := s.Get("no-such-domain"); got != nil {
		t.Errorf("absent key = %v, want nil", got)
	}
}

func TestSnapshotContainsAllDomains(t *testing.T) {
	s := New()
	snap := s.Snapshot()

	for _, domain := range []string{DomainUser, DomainPosts, DomainServicios, DomainCasos, DomainSettings, DomainMedia} {
		if _, ok := snap[domain]; !ok {
			t.Errorf("snapshot missing domain %q", domain)
		}
	}
}

func TestSetNotifiesExactThenWildcard(t *testing.T) {
	s := New()

	var order []string
	var gotNew, gotOld any

	s.Subscribe(DomainPosts, func(newValue, oldValue any) {
		order = append(order, "exact")
		gotNew, gotOld = newValue, oldValue
	})
	s.Subscribe(Wildcard, func(newValue, _ any) {
		order = append(order, "wildcard")
		change, ok := newValue.(Change)
		if !ok {
			t.Errorf("wildcard payload = %T, want Change", newValue)
			return
		}
		if change.Key != DomainPosts {
			t.Errorf("Change.Key = %q, want %q", change.Key, DomainPosts)
		}
	})

	s.Set(DomainPosts, "first")
	s.Set(DomainPosts, "second")

	if len(order) != 4 || order[0] != "exact" || order[1] != "wildcard" {
		t.Errorf("notification order = %v", order)
	}
	if gotNew != "second" || gotOld != "first" {
		t.Errorf("listener saw new=%v old=%v, want new=second old=first", gotNew, gotOld)
	}
}

func TestListenersInvokedInInsertionOrder(t *testing.T) {
	s := New()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		s.Subscribe(DomainCasos, func(_, _ any) {
			order = append(order, i)
		})
	}

	s.Set(DomainCasos, "x")

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("listener order = %v, want [1 2 3]", order)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := New()

	calls := 0
	unsub := s.Subscribe(DomainPosts, func(_, _ any) { calls++ })

	s.Set(DomainPosts, 1)
	unsub()
	s.Set(DomainPosts, 2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	// Unsubscribing twice is harmless.
	unsub()
}

func TestUpdateAppliesTransform(t *testing.T) {
	s := New()
	s.Set(DomainServicios, 10)

	s.Update(DomainServicios, func(old any) any {
		return old.(int) + 5
	})

	if got := s.Get(DomainServicios); got != 15 {
		t.Errorf("after Update = %v, want 15", got)
	}
}

func TestCacheHitWithinTTL(t *testing.T) {
	s := New()
	s.SetCache(DomainPosts, "cached")

	got, ok := s.GetCache(DomainPosts)
	if !ok || got != "cached" {
		t.Errorf("GetCache = %v, %v; want cached, true", got, ok)
	}
}

func TestCacheExpiryEvicts(t *testing.T) {
	s := NewWithTTL(time.Minute)

	base := time.Now()
	current := base
	s.SetClock(func() time.Time { return current })

	s.SetCache(DomainPosts, "cached")

	// Just under the TTL: still valid.
	current = base.Add(59 * time.Second)
	if _, ok := s.GetCache(DomainPosts); !ok {
		t.Fatal("expected cache hit before TTL elapsed")
	}

	// At the TTL boundary: expired and evicted.
	current = base.Add(time.Minute)
	if _, ok := s.GetCache(DomainPosts); ok {
		t.Fatal("expected cache miss after TTL elapsed")
	}

	// Entry was evicted, so even rewinding the clock yields a miss.
	current = base
	if _, ok := s.GetCache(DomainPosts); ok {
		t.Fatal("expected evicted entry to stay gone")
	}
}

func TestClearCacheSingleKey(t *testing.T) {
	s := New()
	s.SetCache(DomainPosts, 1)
	s.SetCache(DomainCasos, 2)

	s.ClearCache(DomainPosts)

	if _, ok := s.GetCache(DomainPosts); ok {
		t.Error("posts cache should be cleared")
	}
	if _, ok := s.GetCache(DomainCasos); !ok {
		t.Error("casos cache should survive")
	}
}

func TestClearCacheAll(t *testing.T) {
	s := New()
	s.SetCache(DomainPosts, 1)
	s.SetCache(DomainCasos, 2)

	s.ClearCache()

	if _, ok := s.GetCache(DomainPosts); ok {
		t.Error("posts cache should be cleared")
	}
	if _, ok := s.GetCache(DomainCasos); ok {
		t.Error("casos cache should be cleared")
	}
}

func TestResetRestoresInitialShapeAndNotifies(t *testing.T) {
	s := New()
	s.Set(DomainPosts, "data")
	s.SetCache(DomainPosts, "cached")

	var wildcardFired bool
	s.Subscribe(Wildcard, func(newValue, oldValue any) {
		wildcardFired = true
		change := newValue.(Change)
		if change.OldValue != nil {
			t.Errorf("reset Change.OldValue = %v, want nil", change.OldValue)
		}
	})

	s.Reset()

	if got := s.Get(DomainPosts); got != nil {
		t.Errorf("posts after reset = %v, want nil", got)
	}
	if _, ok := s.GetCache(DomainPosts); ok {
		t.Error("cache should be cleared on reset")
	}
	if !wildcardFired {
		t.Error("reset should fire a wildcard notification")
	}
}

func TestListenerMayCallBackIntoStore(t *testing.T) {
	s := New()

	s.Subscribe(DomainPosts, func(newValue, _ any) {
		if newValue == "trigger" {
			s.Set(DomainCasos, "side-effect")
		}
	})

	s.Set(DomainPosts, "trigger")

	if got := s.Get(DomainCasos); got != "side-effect" {
		t.Errorf("casos = %v, want side-effect", got)
	}
}
