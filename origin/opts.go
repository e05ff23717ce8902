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

package origin

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/mosaic/encoding/report"
	"github.com/grailbio/mosaic/segment"
)

// Opts configures an origin run.
type Opts struct {
	// MinRunP1 and MinRunP2 are the minimum numbers of consecutive SNPs
	// needed to switch to P1 and to P2, respectively.
	MinRunP1 int
	MinRunP2 int
	// LongFragment is the length above which a fragment of the minimal
	// parent is reported as long.
	LongFragment int64
	// Format is the report format: "xlsx", "tsv" or "tsv-bgz".
	Format string
	// OutDir is the report directory.  Empty means next to each input.
	OutDir string
	// SkipMalformed drops rows with unreadable SNP patterns instead of
	// failing.
	SkipMalformed bool
	// Timestamp appends the run time to report names.
	Timestamp bool
}

// DefaultOpts are the default options.
var DefaultOpts = Opts{
	MinRunP1:     segment.DefaultMinRun,
	MinRunP2:     segment.DefaultMinRun,
	LongFragment: segment.DefaultLongFragment,
	Format:       string(report.XLSX),
}

func (o Opts) validate() error {
	if o.MinRunP1 < 1 || o.MinRunP2 < 1 {
		return errors.E(errors.Invalid,
			fmt.Sprintf("origin: minimum runs must be >= 1, got %d (P1) and %d (P2)", o.MinRunP1, o.MinRunP2))
	}
	if o.LongFragment < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("origin: negative long fragment threshold %d", o.LongFragment))
	}
	_, err := report.ParseFormat(o.Format)
	return err
}
