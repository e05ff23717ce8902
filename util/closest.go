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

// Package util holds small helpers shared by the readers.
package util

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// normalize folds case and drops the separators that spreadsheet exports
// tend to rewrite ("SNP pattern", "snp_pattern", "SNP-Pattern").
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Closest returns the candidate with the smallest Levenshtein distance to
// name, after normalizing both, along with that distance.  It returns ("",
// -1) if candidates is empty.  Ties go to the earliest candidate.
func Closest(name string, candidates []string) (best string, dist int) {
	dist = -1
	n := normalize(name)
	for _, c := range candidates {
		d := matchr.Levenshtein(n, normalize(c))
		if dist < 0 || d < dist {
			best, dist = c, d
		}
	}
	return
}
