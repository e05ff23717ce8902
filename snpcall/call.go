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

package snpcall

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Label identifies the parent a SNP (or a run of SNPs) is attributed to.  The
// numeric value doubles as the smoothing code: P1 = 1, P2 = 2.
type Label uint8

const (
	// NoLabel marks an undefined attribution, e.g. the minimal label of an
	// empty interval set.
	NoLabel Label = iota
	P1
	P2
)

// String implements fmt.Stringer.
func (l Label) String() string {
	switch l {
	case P1:
		return "P1"
	case P2:
		return "P2"
	}
	return "NA"
}

// Other returns the opposite parent.  It returns NoLabel for NoLabel.
func (l Label) Other() Label {
	switch l {
	case P1:
		return P2
	case P2:
		return P1
	}
	return NoLabel
}

// Valid reports whether l is P1 or P2.
func (l Label) Valid() bool { return l == P1 || l == P2 }

// ParseLabel parses "P1", "P2", "1" or "2" (case-insensitive).
func ParseLabel(s string) (Label, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P1", "1":
		return P1, nil
	case "P2", "2":
		return P2, nil
	}
	return NoLabel, errors.E(errors.Invalid, fmt.Sprintf("snpcall.ParseLabel: invalid label %q (expected P1 or P2)", s))
}

// Genome names one of the three coordinate systems.
type Genome uint8

const (
	GenomeP1 Genome = iota
	GenomeP2
	GenomeR
	NumGenomes
)

var genomeNames = [NumGenomes]string{"P1", "P2", "R"}

// String implements fmt.Stringer.
func (g Genome) String() string {
	if g < NumGenomes {
		return genomeNames[g]
	}
	return fmt.Sprintf("Genome(%d)", uint8(g))
}

// ParseGenome parses "P1", "P2" or "R" (case-insensitive).
func ParseGenome(s string) (Genome, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for g, name := range genomeNames {
		if u == name {
			return Genome(g), nil
		}
	}
	return NumGenomes, errors.E(errors.Invalid, fmt.Sprintf("snpcall.ParseGenome: unknown genome %q (expected P1, P2 or R)", s))
}

// GenomeOf returns the coordinate system of a parent.
func GenomeOf(l Label) Genome {
	if l == P2 {
		return GenomeP2
	}
	return GenomeP1
}

// Pos holds one position per genome, indexed by Genome.  Zero means the
// genome has no aligned base at this call.
type Pos [NumGenomes]int64

// Call is one row of a SNP table.
type Call struct {
	// Row is the 1-based data row number in the source table, used for
	// diagnostics only.
	Row int
	// Pattern holds the P1, P2 and R alleles, in that order.
	Pattern string
	Pos     Pos
}

// Site is a call retained by Assign, labeled with its parent of origin.
type Site struct {
	Label Label
	Pos   Pos
}

// Labels extracts the label sequence of sites.
func Labels(sites []Site) []Label {
	labels := make([]Label, len(sites))
	for i, s := range sites {
		labels[i] = s.Label
	}
	return labels
}
