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

	"github.com/grailbio/mosaic/interval"
	"github.com/grailbio/mosaic/snpcall"
)

// Interval is one run of a single parent in a smoothed label sequence.
type Interval struct {
	Label snpcall.Label
	// SNPs is the number of retained SNPs in the run.
	SNPs int
	// Spans holds the closed span of the run in each genome, indexed by
	// snpcall.Genome.
	Spans [snpcall.NumGenomes]interval.Span
}

// Span returns the run's span in genome g.
func (iv Interval) Span(g snpcall.Genome) interval.Span { return iv.Spans[g] }

func (iv Interval) String() string {
	return fmt.Sprintf("%v(%d) P1%v P2%v R%v", iv.Label, iv.SNPs,
		iv.Spans[snpcall.GenomeP1], iv.Spans[snpcall.GenomeP2], iv.Spans[snpcall.GenomeR])
}

// Spans extracts the spans of intervals in genome g, e.g. for
// interval.NewIndex.
func Spans(intervals []Interval, g snpcall.Genome) []interval.Span {
	spans := make([]interval.Span, len(intervals))
	for i, iv := range intervals {
		spans[i] = iv.Spans[g]
	}
	return spans
}
