package bst

import "sort"

type (
	// KeySetは、mapによる基準実装で、ツリーのキー集合と比較するために使う。
	KeySet struct {
		mp map[Item]struct{}
	}
)

func NewKeySet() *KeySet {
	return &KeySet{mp: make(map[Item]struct{})}
}

func (s *KeySet) Has(key Item) bool {
	_, ok := s.mp[key]
	return ok
}

// Setは、キーを追加し、新しく追加された場合にtrueを返す。
func (s *KeySet) Set(key Item) bool {
	if s.Has(key) {
		return false
	}
	s.mp[key] = struct{}{}
	return true
}

func (s *KeySet) Delete(key Item) bool {
	if !s.Has(key) {
		return false
	}
	delete(s.mp, key)
	return true
}

func (s *KeySet) Close() {
	s.mp = nil
}

func (s *KeySet) Len() int {
	return len(s.mp)
}

// Keysは、キーを昇順に並べて返す。
func (s *KeySet) Keys() []Item {
	keys := make([]Item, 0, len(s.mp))
	for key := range s.mp {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}

// Keysは、ツリーのキーを昇順に返す。
func (t *Tree) Keys() []Item {
	keys := make([]Item, 0, t.length)
	t.Ascend(func(i Item) bool {
		keys = append(keys, i)
		return true
	})
	return keys
}
