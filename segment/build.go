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
	"github.com/grailbio/mosaic/interval"
	"github.com/grailbio/mosaic/snpcall"
)

func setStarts(iv *Interval, pos snpcall.Pos, delta int64) {
	for g := range iv.Spans {
		iv.Spans[g].Start = interval.PosType(pos[g] + delta)
	}
}

func setEnds(iv *Interval, pos snpcall.Pos, delta int64) {
	for g := range iv.Spans {
		iv.Spans[g].End = interval.PosType(pos[g] + delta)
	}
}

// Build collapses a smoothed label sequence into intervals, one per maximal
// run.  sites supplies the positions and must be index-aligned with smoothed.
//
// At each switch between SNP i and i+1, the boundary goes to the receptor
// side:
//   - if SNP i belongs to donor, its run ends at SNP i and the next run
//     starts one base after SNP i;
//   - otherwise its run ends one base before SNP i+1 and the next run starts
//     at SNP i+1.
// Consecutive intervals therefore abut in every genome (end + 1 == next
// start).
//
// An empty sequence yields no intervals; a single-SNP sequence is an error.
func Build(smoothed []snpcall.Label, sites []snpcall.Site, donor snpcall.Label) ([]Interval, error) {
	if len(smoothed) != len(sites) {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("segment.Build: %d labels but %d sites", len(smoothed), len(sites)))
	}
	if !donor.Valid() {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("segment.Build: invalid donor %v", donor))
	}
	n := len(smoothed)
	switch n {
	case 0:
		return nil, nil
	case 1:
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("segment.Build: degenerate sequence: a single SNP (positions %v) cannot bound a run", sites[0].Pos))
	}
	for i, l := range smoothed {
		if !l.Valid() {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("segment.Build: invalid label %v at index %d", l, i))
		}
	}

	var intervals []Interval
	cur := Interval{Label: smoothed[0]}
	setStarts(&cur, sites[0].Pos, 0)
	first := 0
	for i := 0; i+1 < n; i++ {
		if smoothed[i] == smoothed[i+1] {
			continue
		}
		next := Interval{Label: smoothed[i+1]}
		if smoothed[i] == donor {
			setEnds(&cur, sites[i].Pos, 0)
			setStarts(&next, sites[i].Pos, 1)
		} else {
			setEnds(&cur, sites[i+1].Pos, -1)
			setStarts(&next, sites[i+1].Pos, 0)
		}
		cur.SNPs = i + 1 - first
		intervals = append(intervals, cur)
		cur, first = next, i+1
	}
	setEnds(&cur, sites[n-1].Pos, 0)
	cur.SNPs = n - first
	return append(intervals, cur), nil
}
