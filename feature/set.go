package feature

import (
	"fmt"
	"math/bits"
)

/*
Set is an immutable set of features of a domain, used to track the
candidate features a tree may still split on. Without returns a new set
and leaves the receiver untouched, so sets can be handed down recursive
calls without copying them defensively.
*/
type Set struct {
	domain *Domain
	bits   []uint64
}

// All returns the set with every feature of the given domain.
func All(d *Domain) Set {
	s := Set{domain: d, bits: make([]uint64, (d.Len()+63)/64)}
	for _, f := range d.features {
		s.bits[f.index/64] |= 1 << uint(f.index%64)
	}
	return s
}

/*
Subset takes feature names and returns the set with those features of the
domain, or an error wrapping ErrUnknownFeature if any of them is not part
of it.
*/
func (d *Domain) Subset(names ...string) (Set, error) {
	s := Set{domain: d, bits: make([]uint64, (d.Len()+63)/64)}
	for _, name := range names {
		f := d.byName[name]
		if f == nil {
			return Set{}, fmt.Errorf("%w: %s", ErrUnknownFeature, name)
		}
		s.bits[f.index/64] |= 1 << uint(f.index%64)
	}
	return s, nil
}

// Without returns a set with the features of s except f.
func (s Set) Without(f *Feature) Set {
	result := Set{domain: s.domain, bits: make([]uint64, len(s.bits))}
	copy(result.bits, s.bits)
	if i := s.indexOf(f); i >= 0 {
		result.bits[i/64] &^= 1 << uint(i%64)
	}
	return result
}

// Contains reports whether f belongs to the set.
func (s Set) Contains(f *Feature) bool {
	i := s.indexOf(f)
	return i >= 0 && s.bits[i/64]&(1<<uint(i%64)) != 0
}

// Len returns the number of features in the set.
func (s Set) Len() int {
	var n int
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether the set has no features.
func (s Set) Empty() bool {
	for _, w := range s.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Features returns the features in the set in domain order.
func (s Set) Features() []*Feature {
	if s.domain == nil {
		return nil
	}
	result := make([]*Feature, 0, s.Len())
	for _, f := range s.domain.features {
		if s.bits[f.index/64]&(1<<uint(f.index%64)) != 0 {
			result = append(result, f)
		}
	}
	return result
}

// indexOf returns the domain index of f if f is the domain's own feature
// with that name, -1 otherwise.
func (s Set) indexOf(f *Feature) int {
	if s.domain == nil || f == nil {
		return -1
	}
	df := s.domain.byName[f.name]
	if df == nil {
		return -1
	}
	return df.index
}
