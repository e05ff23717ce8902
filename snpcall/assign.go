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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// missingAllele is the no-data symbol of the SNP pattern alphabet.
const missingAllele = 'n'

// AssignOpts controls the handling of malformed rows.
type AssignOpts struct {
	// SkipMalformed makes Assign record malformed rows in
	// Assignment.Malformed and keep going, instead of failing on the first one.
	SkipMalformed bool
}

// Malformed describes a row whose pattern could not be interpreted.
type Malformed struct {
	Row     int
	Pattern string
	Reason  string
}

func (m Malformed) String() string {
	return fmt.Sprintf("row %d: pattern %q: %s", m.Row, m.Pattern, m.Reason)
}

// AssignStats counts the rows dropped by Assign, by cause.
type AssignStats struct {
	// Missing counts patterns containing the no-data allele N.
	Missing int
	// Unmatched counts patterns whose R allele matches neither parent.
	Unmatched int
	// Unaligned counts labeled calls with a zero P1 or P2 position.
	Unaligned int
}

// Assignment is the result of Assign.
type Assignment struct {
	// Sites holds the retained calls, in input order.
	Sites     []Site
	Malformed []Malformed
	Stats     AssignStats
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func validAllele(c byte) bool {
	c = lowerASCII(c)
	return ('a' <= c && c <= 'z') || c == '-'
}

// checkPattern returns a nonempty reason when pattern is not a 3-allele
// pattern over letters and '-'.
func checkPattern(pattern string) string {
	if len(pattern) != 3 {
		return fmt.Sprintf("expected 3 alleles, got %d characters", len(pattern))
	}
	for i := 0; i < 3; i++ {
		if !validAllele(pattern[i]) {
			return fmt.Sprintf("unexpected allele %q at offset %d", pattern[i], i)
		}
	}
	return ""
}

// classify returns the parent whose allele the recombinant carries, or
// NoLabel.  The P1 comparison runs first, so a P1 == P2 == R pattern is P1.
func classify(pattern string, stats *AssignStats) Label {
	a1, a2, ar := lowerASCII(pattern[0]), lowerASCII(pattern[1]), lowerASCII(pattern[2])
	if a1 == missingAllele || a2 == missingAllele || ar == missingAllele {
		stats.Missing++
		return NoLabel
	}
	switch ar {
	case a1:
		return P1
	case a2:
		return P2
	}
	stats.Unmatched++
	return NoLabel
}

// Assign attributes each call to the parent whose allele matches the
// recombinant allele, and drops ambiguous calls.  A call is kept only if both
// parental positions are nonzero.
//
// A malformed pattern is an errors.Invalid error naming the row, unless
// opts.SkipMalformed is set.
func Assign(calls []Call, opts AssignOpts) (Assignment, error) {
	var a Assignment
	a.Sites = make([]Site, 0, len(calls))
	for _, c := range calls {
		if reason := checkPattern(c.Pattern); reason != "" {
			m := Malformed{Row: c.Row, Pattern: c.Pattern, Reason: reason}
			if !opts.SkipMalformed {
				return Assignment{}, errors.E(errors.Invalid, "snpcall.Assign: malformed record:", m.String())
			}
			a.Malformed = append(a.Malformed, m)
			continue
		}
		label := classify(c.Pattern, &a.Stats)
		if label == NoLabel {
			continue
		}
		if c.Pos[GenomeP1] == 0 || c.Pos[GenomeP2] == 0 {
			a.Stats.Unaligned++
			continue
		}
		a.Sites = append(a.Sites, Site{Label: label, Pos: c.Pos})
	}
	if len(a.Malformed) > 0 {
		log.Printf("snpcall.Assign: skipped %d malformed record(s), first: %v", len(a.Malformed), a.Malformed[0])
	}
	log.Debug.Printf("snpcall.Assign: %d calls, %d retained, %+v", len(calls), len(a.Sites), a.Stats)
	return a, nil
}
