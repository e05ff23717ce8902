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
	"math/rand"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/mosaic/snpcall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	p1 = snpcall.P1
	p2 = snpcall.P2
)

// runs splits labels into maximal runs, returning (label, length) pairs.
func runs(labels []snpcall.Label) (out [][2]int) {
	for i, l := range labels {
		if i == 0 || labels[i-1] != l {
			out = append(out, [2]int{int(l), 0})
		}
		out[len(out)-1][1]++
	}
	return
}

func TestSmooth(t *testing.T) {
	tests := []struct {
		name             string
		labels           []snpcall.Label
		base             snpcall.Label
		minRunP1, minRun int
		want             []snpcall.Label
	}{
		{
			name:     "lone_switch_absorbed",
			labels:   []snpcall.Label{p1, p1, p2, p1, p1, p1, p2, p2, p2},
			base:     p1,
			minRunP1: 2, minRun: 2,
			want: []snpcall.Label{p1, p1, p1, p1, p1, p1, p2, p2, p2},
		},
		{
			name:     "base_p2_mirror",
			labels:   []snpcall.Label{p2, p2, p1, p2, p2, p2, p1, p1, p1},
			base:     p2,
			minRunP1: 2, minRun: 2,
			want: []snpcall.Label{p2, p2, p2, p2, p2, p2, p1, p1, p1},
		},
		{
			name:     "threshold_one_is_identity",
			labels:   []snpcall.Label{p2, p1, p2, p2, p1, p2},
			base:     p1,
			minRunP1: 1, minRun: 1,
			want: []snpcall.Label{p2, p1, p2, p2, p1, p2},
		},
		{
			name:     "short_prefix_before_lock",
			labels:   []snpcall.Label{p2, p1, p1, p1},
			base:     p1,
			minRunP1: 2, minRun: 2,
			want: []snpcall.Label{p2, p1, p1, p1},
		},
		{
			name:     "unresolved_prefix_stays_on_lock",
			labels:   []snpcall.Label{p1, p2, p1, p2},
			base:     p1,
			minRunP1: 2, minRun: 2,
			want: []snpcall.Label{p2, p2, p2, p2},
		},
		{
			name:     "trailing_short_run_absorbed",
			labels:   []snpcall.Label{p1, p1, p1, p1, p2, p2},
			base:     p1,
			minRunP1: 2, minRun: 3,
			want: []snpcall.Label{p1, p1, p1, p1, p1, p1},
		},
		{
			name:     "asymmetric_thresholds",
			labels:   []snpcall.Label{p1, p1, p1, p2, p2, p2, p1, p2, p2, p2},
			base:     p1,
			minRunP1: 3, minRun: 3,
			want: []snpcall.Label{p1, p1, p1, p2, p2, p2, p2, p2, p2, p2},
		},
	}
	for _, tt := range tests {
		got, err := Smooth(tt.labels, tt.base, tt.minRunP1, tt.minRun)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestSmoothEmpty(t *testing.T) {
	got, err := Smooth(nil, p1, 2, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSmoothInvalidArgs(t *testing.T) {
	_, err := Smooth([]snpcall.Label{p1}, snpcall.NoLabel, 2, 2)
	assert.True(t, errors.Is(errors.Invalid, err))
	_, err = Smooth([]snpcall.Label{p1}, p1, 0, 2)
	assert.True(t, errors.Is(errors.Invalid, err))
	_, err = Smooth([]snpcall.Label{p1, snpcall.NoLabel}, p1, 2, 2)
	assert.True(t, errors.Is(errors.Invalid, err))
}

// TestSmoothRunLength checks that every run after the first one is at least
// as long as the minimum run of its parent.
func TestSmoothRunLength(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		n := r.Intn(200)
		labels := make([]snpcall.Label, n)
		for i := range labels {
			labels[i] = snpcall.Label(1 + r.Intn(2))
		}
		minRun := [3]int{0, 1 + r.Intn(4), 1 + r.Intn(4)}
		base := snpcall.Label(1 + r.Intn(2))
		got, err := Smooth(labels, base, minRun[p1], minRun[p2])
		require.NoError(t, err)
		require.Len(t, got, n)
		for i, run := range runs(got) {
			if i == 0 {
				continue
			}
			assert.True(t, run[1] >= minRun[run[0]],
				"iter %d: run %d of %v has length %d < %d", iter, i, snpcall.Label(run[0]), run[1], minRun[run[0]])
		}
		again, err := Smooth(labels, base, minRun[p1], minRun[p2])
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}
