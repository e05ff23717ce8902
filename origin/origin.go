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
	"context"
	"fmt"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/mosaic/encoding/report"
	"github.com/grailbio/mosaic/encoding/snptable"
	"github.com/grailbio/mosaic/segment"
	"github.com/grailbio/mosaic/snpcall"
)

// Segmentation is the per-table part of an orientation.
type Segmentation struct {
	Assignment snpcall.Assignment
	// Smoothed is index-aligned with Assignment.Sites.
	Smoothed  []snpcall.Label
	Intervals []segment.Interval
}

// Segment runs the assign, smooth and build stages on one table, with
// receptor as the smoothing base and the other parent as the donor.
func Segment(calls []snpcall.Call, receptor snpcall.Label, opts Opts) (Segmentation, error) {
	var (
		s   Segmentation
		err error
	)
	if !receptor.Valid() {
		return s, errors.E(errors.Invalid, fmt.Sprintf("origin: invalid receptor %v", receptor))
	}
	if s.Assignment, err = snpcall.Assign(calls, snpcall.AssignOpts{SkipMalformed: opts.SkipMalformed}); err != nil {
		return s, err
	}
	if s.Smoothed, err = segment.Smooth(snpcall.Labels(s.Assignment.Sites), receptor, opts.MinRunP1, opts.MinRunP2); err != nil {
		return s, err
	}
	s.Intervals, err = segment.Build(s.Smoothed, s.Assignment.Sites, receptor.Other())
	return s, err
}

// Result is the outcome of one orientation.
type Result struct {
	report.Report
	// ReceptorSeg and DonorSeg are the per-table segmentations behind the
	// report.
	ReceptorSeg, DonorSeg Segmentation
	// Paths lists the report files, once written.
	Paths []string
}

// Orient computes one orientation.  receptorCalls must be sorted by the
// receptor's positions and donorCalls by the donor's; both describe the same
// SNP set.  The receptor summary is computed in the receptor's coordinates
// and the donor totals in the donor's.
func Orient(receptorCalls, donorCalls []snpcall.Call, receptor snpcall.Label, opts Opts) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	recv, err := Segment(receptorCalls, receptor, opts)
	if err != nil {
		return nil, errors.E(err, fmt.Sprintf("origin: receptor %v, receptor-sorted table", receptor))
	}
	don, err := Segment(donorCalls, receptor, opts)
	if err != nil {
		return nil, errors.E(err, fmt.Sprintf("origin: receptor %v, donor-sorted table", receptor))
	}
	donor := receptor.Other()
	r := &Result{
		Report: report.Report{
			Receptor:         receptor,
			Intervals:        recv.Intervals,
			DonorIntervals:   don.Intervals,
			Summary:          segment.ReceptorSummary(recv.Intervals, snpcall.GenomeOf(receptor), opts.LongFragment),
			Donor:            segment.DonorSummary(don.Intervals, snpcall.GenomeOf(donor)),
			Stats:            recv.Assignment.Stats,
			ReceptorChecksum: snptable.Checksum(receptorCalls),
			DonorChecksum:    snptable.Checksum(donorCalls),
			MinRunP1:         opts.MinRunP1,
			MinRunP2:         opts.MinRunP2,
		},
		ReceptorSeg: recv,
		DonorSeg:    don,
	}
	s := r.Summary
	log.Printf("origin: receptor %v: %d intervals, P1 %d bp, P2 %d bp, minimal %v; donor %v: %d bp in %v coordinates",
		receptor, len(r.Intervals), s.Bases[snpcall.P1], s.Bases[snpcall.P2], s.MinLabel,
		donor, r.DonorBases(), r.Donor.Space)
	if s.LongFragments > 0 {
		log.Printf("origin: receptor %v: %d %v fragments longer than %d bp, %d bp in total",
			receptor, s.LongFragments, s.MinLabel, s.LongThreshold, s.LongBases)
	}
	if s.MinLabel == snpcall.NoLabel {
		log.Error.Printf("origin: receptor %v: no informative SNPs; minimal parent undefined", receptor)
	}
	return r, nil
}

// Verdict is the outcome of Run.
type Verdict struct {
	// Receptor is the parent judged to be the receptor; Donor is the other.
	Receptor, Donor snpcall.Label
	// Orientations holds the results with receptor P1 and P2, in that order.
	Orientations [2]*Result
}

// Run reads the P1-sorted and P2-sorted versions of a SNP table, computes
// both orientations, writes one report per orientation and decides which
// parent is the receptor: P1 if the minimal parent with P1 as receptor is
// P2, else P2.  Nothing is written unless both orientations succeed.
func Run(ctx context.Context, p1SortedPath, p2SortedPath string, opts Opts) (*Verdict, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	format, _ := report.ParseFormat(opts.Format)
	p1Calls, err := snptable.Read(ctx, p1SortedPath)
	if err != nil {
		return nil, err
	}
	p2Calls, err := snptable.Read(ctx, p2SortedPath)
	if err != nil {
		return nil, err
	}
	log.Printf("origin: %s: %d rows, %s: %d rows", p1SortedPath, len(p1Calls), p2SortedPath, len(p2Calls))

	v := &Verdict{}
	if v.Orientations[0], err = Orient(p1Calls, p2Calls, snpcall.P1, opts); err != nil {
		return nil, err
	}
	if v.Orientations[1], err = Orient(p2Calls, p1Calls, snpcall.P2, opts); err != nil {
		return nil, err
	}

	var stamp time.Time
	if opts.Timestamp {
		stamp = time.Now()
	}
	prefixes := [2]string{
		report.Prefix(opts.OutDir, p1SortedPath, stamp),
		report.Prefix(opts.OutDir, p2SortedPath, stamp),
	}
	if prefixes[0] == prefixes[1] {
		prefixes[0] += "_P1"
		prefixes[1] += "_P2"
	}
	for i, r := range v.Orientations {
		if r.Paths, err = report.Write(ctx, prefixes[i], format, &r.Report); err != nil {
			return nil, err
		}
	}

	v.Receptor, v.Donor = snpcall.P2, snpcall.P1
	if v.Orientations[0].Summary.MinLabel == snpcall.P2 {
		v.Receptor, v.Donor = snpcall.P1, snpcall.P2
	}
	log.Printf("origin: %v is the receptor and %v the donor", v.Receptor, v.Donor)
	return v, nil
}
