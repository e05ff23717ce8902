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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PosType is the coordinate type of spans.  SNP tables carry 1-based
// positions, and a genome-wide total can exceed int32, so it is 64 bits wide.
type PosType int64

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt64

// Span is a closed interval [Start, End] in one coordinate system.
type Span struct {
	Start PosType
	End   PosType
}

// Len returns End - Start.  This is the quantity summed into per-parent
// totals, so a single-base span has length zero.
func (s Span) Len() PosType { return s.End - s.Start }

// Contains reports whether pos lies in the closed span.
func (s Span) Contains(pos PosType) bool { return s.Start <= pos && pos <= s.End }

// Overlaps reports whether the two closed spans share at least one position.
func (s Span) Overlaps(o Span) bool { return s.Start <= o.End && o.Start <= s.End }

// String implements fmt.Stringer.
func (s Span) String() string { return fmt.Sprintf("[%d, %d]", s.Start, s.End) }

// Region is a named closed range, e.g. a range of recombinant coordinates.
type Region struct {
	Name string
	Span
}

// ParseRegionString parses a region string of one of the forms
//   [name]:[1-based first pos]-[last pos]
//   [name]:[1-based pos]
//   [name]
// Ranges are closed.  The span [1, PosTypeMax] is returned if there is no
// positional restriction.
func ParseRegionString(region string) (result Region, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.Name = region
		result.Start = 1
		result.End = PosTypeMax
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty name in %q", region)
		return
	}
	result.Name = region[0:colonPos]
	rangeStr := strings.Replace(region[colonPos+1:], ",", "", -1)
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 64); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start = PosType(pos1)
		result.End = PosType(pos1)
		return
	}
	var start1, end1 int64
	if start1, err = strconv.ParseInt(rangeStr[:dashPos], 10, 64); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr[:dashPos])
		return
	}
	if end1, err = strconv.ParseInt(rangeStr[dashPos+1:], 10, 64); err != nil {
		return
	}
	if end1 < start1 {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start = PosType(start1)
	result.End = PosType(end1)
	return
}
