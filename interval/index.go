// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interval

import (
	"github.com/biogo/store/llrb"
)

// key orders spans by start, then by insertion order.
type key struct {
	start PosType
	id    int
	span  Span
}

// Compare compares two key objects for use in llrb.
func (k key) Compare(c2 llrb.Comparable) int {
	k2 := c2.(key)
	switch {
	case k.start < k2.start:
		return -1
	case k.start > k2.start:
		return 1
	case k.id < k2.id:
		return -1
	case k.id > k2.id:
		return 1
	}
	return 0
}

const maxID = int(^uint(0) >> 1)

// Index answers point and range queries over a set of closed spans.  Spans
// may overlap and need not be sorted; segment spans in parental coordinates
// are not always monotone.  Thread compatible.
type Index struct {
	byStart llrb.Tree
	// maxLen is the largest Len() of any indexed span; it bounds how far left
	// of a query a containing span can start.
	maxLen PosType
}

// NewIndex indexes spans.  Query results are indices into spans.
func NewIndex(spans []Span) *Index {
	x := &Index{}
	for i, s := range spans {
		if s.End < s.Start {
			s.Start, s.End = s.End, s.Start
		}
		x.byStart.Insert(key{start: s.Start, id: i, span: s})
		if l := s.Len(); l > x.maxLen {
			x.maxLen = l
		}
	}
	return x
}

// Len returns the number of indexed spans.
func (x *Index) Len() int { return x.byStart.Len() }

// Overlap returns the indices of all spans sharing a position with q, in
// order of increasing start.
func (x *Index) Overlap(q Span) []int {
	if x.byStart.Len() == 0 || q.End < q.Start {
		return nil
	}
	lo := q.Start - x.maxLen
	if lo > q.Start {
		// Underflow.
		lo = -PosTypeMax
	}
	var ids []int
	visit := func(c llrb.Comparable) bool {
		k := c.(key)
		if k.span.Overlaps(q) {
			ids = append(ids, k.id)
		}
		return false
	}
	// DoRange visits [from, to); no id reaches maxID, so every span starting
	// at q.End is included.
	x.byStart.DoRange(visit, key{start: lo, id: -1}, key{start: q.End, id: maxID})
	return ids
}

// Find returns the indices of all spans containing pos.
func (x *Index) Find(pos PosType) []int {
	return x.Overlap(Span{Start: pos, End: pos})
}

// Floor returns the index of the span with the largest start <= pos, or -1.
func (x *Index) Floor(pos PosType) int {
	c := x.byStart.Floor(key{start: pos, id: maxID})
	if c == nil {
		return -1
	}
	return c.(key).id
}
