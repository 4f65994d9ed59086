package dedupe

// SeenSet is the set of normalized email keys kept by earlier files. It is a
// value: With returns a new set and never modifies the receiver.
type SeenSet struct {
	keys map[string]struct{}
}

// NewSeenSet returns a set holding keys.
func NewSeenSet(keys ...string) SeenSet {
	s := SeenSet{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set.
func (s SeenSet) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of keys.
func (s SeenSet) Len() int {
	return len(s.keys)
}

// With returns a copy of s extended by keys.
func (s SeenSet) With(keys ...string) SeenSet {
	next := SeenSet{keys: make(map[string]struct{}, len(s.keys)+len(keys))}
	for k := range s.keys {
		next.keys[k] = struct{}{}
	}
	for _, k := range keys {
		next.keys[k] = struct{}{}
	}
	return next
}
