package circus

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Vocabulary is the bidirectional mapping between canonical fragment keys
// and feature-column indices.
//
// It lives through two phases. While fitting, Observe appends new keys at
// the next free index; concurrent Observe calls are serialized internally so
// two keys can never race for the same index. Freeze is a one-way switch:
// afterwards Observe fails with ErrVocabularyFrozen and all reads are
// lock-free, safe for unlimited concurrent readers. Index assignment for a
// seen key never changes, so feature-matrix columns are stable between
// training and inference.
type Vocabulary struct {
	mu     sync.RWMutex
	frozen atomic.Bool
	index  map[string]int
	keys   []string
}

// KeyIndex is one entry of a vocabulary snapshot.
type KeyIndex struct {
	// Key is the canonical fragment key.
	Key string

	// Index is the feature-column index assigned to Key.
	Index int
}

// NewVocabulary returns an empty, unfrozen vocabulary. Complexity: O(1).
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// Observe returns the index of key, assigning the next free index if the key
// is new. Returns ErrVocabularyFrozen after Freeze.
func (v *Vocabulary) Observe(key string) (int, error) {
	if v.frozen.Load() {
		return 0, ErrVocabularyFrozen
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	// Re-check under the lock: Freeze may have won the race.
	if v.frozen.Load() {
		return 0, ErrVocabularyFrozen
	}
	if idx, ok := v.index[key]; ok {
		return idx, nil
	}
	idx := len(v.keys)
	v.index[key] = idx
	v.keys = append(v.keys, key)
	return idx, nil
}

// Lookup returns the index of key and whether it is present. Never mutates.
// After Freeze the read takes no lock.
func (v *Vocabulary) Lookup(key string) (int, bool) {
	if v.frozen.Load() {
		idx, ok := v.index[key]
		return idx, ok
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	idx, ok := v.index[key]
	return idx, ok
}

// Freeze switches the vocabulary to read-only. Idempotent.
func (v *Vocabulary) Freeze() {
	v.mu.Lock()
	v.frozen.Store(true)
	v.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (v *Vocabulary) Frozen() bool { return v.frozen.Load() }

// Len reports the number of distinct keys observed.
func (v *Vocabulary) Len() int {
	if v.frozen.Load() {
		return len(v.keys)
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.keys)
}

// Keys returns a copy of all keys in index order.
func (v *Vocabulary) Keys() []string {
	if !v.frozen.Load() {
		v.mu.RLock()
		defer v.mu.RUnlock()
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Snapshot returns the flat (key, index) pairs of the vocabulary, ordered by
// index, for persistence. The snapshot is fully reconstructible via
// FromSnapshot.
func (v *Vocabulary) Snapshot() []KeyIndex {
	keys := v.Keys()
	out := make([]KeyIndex, len(keys))
	for i, k := range keys {
		out[i] = KeyIndex{Key: k, Index: i}
	}
	return out
}

// FromSnapshot reconstructs a frozen vocabulary from pairs. The pairs must
// form a dense injective mapping over indices 0..len-1 with distinct keys;
// anything else fails with ErrBadSnapshot. Pair order does not matter.
func FromSnapshot(pairs []KeyIndex) (*Vocabulary, error) {
	sorted := make([]KeyIndex, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	v := NewVocabulary()
	for i, p := range sorted {
		if p.Index != i {
			return nil, fmt.Errorf("%w: index %d at position %d", ErrBadSnapshot, p.Index, i)
		}
		if _, dup := v.index[p.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrBadSnapshot, p.Key)
		}
		v.index[p.Key] = i
		v.keys = append(v.keys, p.Key)
	}
	v.Freeze()
	return v, nil
}
