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

package segment

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/mosaic/snpcall"
)

// DefaultMinRun is the usual minimum number of consecutive SNPs needed to
// accept a switch of parent.
const DefaultMinRun = 2

// smoother is the hysteresis state machine behind Smooth.
//
// It is locked onto one parent and emits that parent's code for every SNP.
// SNPs of the other parent increment pending; a SNP of the locked parent
// resets it.  Once pending reaches the other parent's minimum run, the last
// pending outputs are rewritten to the other parent and the lock flips.
type smoother struct {
	minRun  [3]int // indexed by Label
	locked  snpcall.Label
	pending int
	out     []snpcall.Label
}

func (s *smoother) push(l snpcall.Label) {
	s.out = append(s.out, s.locked)
	if l == s.locked {
		s.pending = 0
		return
	}
	s.pending++
	target := s.locked.Other()
	if s.pending < s.minRun[target] {
		return
	}
	for i := len(s.out) - s.pending; i < len(s.out); i++ {
		s.out[i] = target
	}
	s.pending = 0
	s.locked = target
}

// Smooth suppresses parent switches shorter than the configured minimum run.
// base is the receptor; the scan starts locked onto the other parent, so the
// first run of the output is the only one that may be shorter than its
// minimum.  Pending SNPs at the end of the sequence that never reach their
// minimum stay attributed to the locked parent.
//
// The result has the same length as labels.  minRunP1 and minRunP2 must be
// >= 1; a minimum of 1 accepts every switch.
func Smooth(labels []snpcall.Label, base snpcall.Label, minRunP1, minRunP2 int) ([]snpcall.Label, error) {
	if !base.Valid() {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("segment.Smooth: invalid base %v", base))
	}
	if minRunP1 < 1 || minRunP2 < 1 {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("segment.Smooth: minimum runs must be >= 1, got %d (P1) and %d (P2)", minRunP1, minRunP2))
	}
	s := smoother{
		locked: base.Other(),
		out:    make([]snpcall.Label, 0, len(labels)),
	}
	s.minRun[snpcall.P1] = minRunP1
	s.minRun[snpcall.P2] = minRunP2
	for i, l := range labels {
		if !l.Valid() {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("segment.Smooth: invalid label %v at index %d", l, i))
		}
		s.push(l)
	}
	return s.out, nil
}
