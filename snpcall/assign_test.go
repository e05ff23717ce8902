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
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func call(row int, pattern string, p1, p2, r int64) Call {
	return Call{Row: row, Pattern: pattern, Pos: Pos{p1, p2, r}}
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name    string
		call    Call
		want    Label // NoLabel means dropped
		missing int
	}{
		{"r_matches_p1", call(1, "acA", 10, 20, 30), P1, 0},
		{"r_matches_p2", call(2, "aCc", 10, 20, 30), P2, 0},
		{"all_equal_is_p1", call(3, "GGg", 10, 20, 30), P1, 0},
		{"r_matches_neither", call(4, "acg", 10, 20, 30), NoLabel, 0},
		{"n_in_p1", call(5, "nca", 10, 20, 30), NoLabel, 1},
		{"N_in_p2", call(6, "aNa", 10, 20, 30), NoLabel, 1},
		{"n_in_r", call(7, "acn", 10, 20, 30), NoLabel, 1},
		{"p1_unaligned", call(8, "aca", 0, 20, 30), NoLabel, 0},
		{"p2_unaligned", call(9, "acc", 10, 0, 30), NoLabel, 0},
		{"r_unaligned_is_kept", call(10, "acc", 10, 20, 0), P2, 0},
		{"gap_allele", call(11, "-ca", 10, 20, 30), NoLabel, 0},
	}
	for _, tt := range tests {
		a, err := Assign([]Call{tt.call}, AssignOpts{})
		assert.NoError(t, err, tt.name)
		expect.EQ(t, a.Stats.Missing, tt.missing, tt.name)
		if tt.want == NoLabel {
			expect.EQ(t, len(a.Sites), 0, tt.name)
			continue
		}
		assert.EQ(t, len(a.Sites), 1, tt.name)
		expect.EQ(t, a.Sites[0].Label, tt.want, tt.name)
		expect.EQ(t, a.Sites[0].Pos, tt.call.Pos, tt.name)
	}
}

func TestAssignKeepsOrder(t *testing.T) {
	calls := []Call{
		call(1, "aca", 1, 101, 1001),
		call(2, "acn", 2, 102, 1002),
		call(3, "acc", 3, 103, 1003),
		call(4, "tgg", 4, 0, 1004),
		call(5, "tgt", 5, 105, 1005),
	}
	a, err := Assign(calls, AssignOpts{})
	assert.NoError(t, err)
	expect.EQ(t, Labels(a.Sites), []Label{P1, P2, P1})
	expect.EQ(t, a.Sites[1].Pos, Pos{3, 103, 1003})
	expect.EQ(t, a.Stats, AssignStats{Missing: 1, Unaligned: 1})
}

func TestAssignMalformed(t *testing.T) {
	calls := []Call{
		call(1, "aca", 1, 2, 3),
		call(2, "ac", 1, 2, 3),
		call(3, "a1a", 1, 2, 3),
		call(4, "acgt", 1, 2, 3),
		call(5, "acc", 1, 2, 3),
	}
	_, err := Assign(calls, AssignOpts{})
	assert.NotNil(t, err)
	expect.True(t, errors.Is(errors.Invalid, err))
	assert.HasSubstr(t, err.Error(), "row 2")

	a, err := Assign(calls, AssignOpts{SkipMalformed: true})
	assert.NoError(t, err)
	expect.EQ(t, Labels(a.Sites), []Label{P1, P2})
	assert.EQ(t, len(a.Malformed), 3)
	expect.EQ(t, a.Malformed[0].Row, 2)
	expect.EQ(t, a.Malformed[1].Row, 3)
	assert.HasSubstr(t, a.Malformed[1].Reason, "offset 1")
	expect.EQ(t, a.Malformed[2].Pattern, "acgt")
}

func TestAssignEmpty(t *testing.T) {
	a, err := Assign(nil, AssignOpts{})
	assert.NoError(t, err)
	expect.EQ(t, len(a.Sites), 0)
	expect.EQ(t, len(a.Malformed), 0)
}

func TestParseLabel(t *testing.T) {
	for _, s := range []string{"P1", "p1", " 1 "} {
		l, err := ParseLabel(s)
		assert.NoError(t, err)
		expect.EQ(t, l, P1)
	}
	l, err := ParseLabel("P2")
	assert.NoError(t, err)
	expect.EQ(t, l, P2)
	expect.EQ(t, l.Other(), P1)
	_, err = ParseLabel("P3")
	expect.True(t, errors.Is(errors.Invalid, err), err)
	expect.EQ(t, NoLabel.String(), "NA")
}

func TestParseGenome(t *testing.T) {
	g, err := ParseGenome("r")
	assert.NoError(t, err)
	expect.EQ(t, g, GenomeR)
	expect.EQ(t, GenomeOf(P2), GenomeP2)
	_, err = ParseGenome("P3")
	expect.True(t, errors.Is(errors.Invalid, err), err)
}
