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
	"github.com/grailbio/mosaic/snpcall"
)

// DefaultLongFragment is the length above which a fragment of the minimal
// parent is counted as long.
const DefaultLongFragment = 1000

// Summary aggregates intervals in the receptor's coordinate system.
type Summary struct {
	Space snpcall.Genome
	// Bases and Fragments are indexed by snpcall.Label; the NoLabel slot is
	// unused.
	Bases     [3]int64
	Fragments [3]int
	// MinLabel is the parent with the smaller total.  P1 wins ties.  It is
	// NoLabel when there are no intervals.
	MinLabel snpcall.Label
	// LongThreshold, LongFragments and LongBases describe the MinLabel
	// intervals longer than LongThreshold.
	LongThreshold int64
	LongFragments int
	LongBases     int64
}

// DonorTotals aggregates intervals in the donor's coordinate system.
type DonorTotals struct {
	Space snpcall.Genome
	// Bases is indexed by snpcall.Label.
	Bases [3]int64
}

// tally sums End - Start of each interval's span in space, by label.
func tally(intervals []Interval, space snpcall.Genome) (bases [3]int64, fragments [3]int) {
	for _, iv := range intervals {
		if !iv.Label.Valid() {
			continue
		}
		bases[iv.Label] += int64(iv.Spans[space].Len())
		fragments[iv.Label]++
	}
	return
}

// ReceptorSummary computes per-parent totals and fragment counts over
// intervals in the receptor genome space, identifies the parent with the
// smaller footprint, and counts that parent's fragments longer than
// longThreshold.
func ReceptorSummary(intervals []Interval, space snpcall.Genome, longThreshold int64) Summary {
	s := Summary{Space: space, LongThreshold: longThreshold}
	s.Bases, s.Fragments = tally(intervals, space)
	if len(intervals) == 0 {
		return s
	}
	s.MinLabel = snpcall.P1
	if s.Bases[snpcall.P2] < s.Bases[snpcall.P1] {
		s.MinLabel = snpcall.P2
	}
	for _, iv := range intervals {
		if iv.Label != s.MinLabel {
			continue
		}
		if l := int64(iv.Spans[space].Len()); l > longThreshold {
			s.LongFragments++
			s.LongBases += l
		}
	}
	return s
}

// DonorSummary computes per-parent totals over intervals in the donor genome
// space, without any length threshold.
func DonorSummary(intervals []Interval, space snpcall.Genome) DonorTotals {
	t := DonorTotals{Space: space}
	t.Bases, _ = tally(intervals, space)
	return t
}
