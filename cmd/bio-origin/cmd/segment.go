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

package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/mosaic/encoding/snptable"
	"github.com/grailbio/mosaic/interval"
	"github.com/grailbio/mosaic/origin"
	"github.com/grailbio/mosaic/segment"
	"github.com/grailbio/mosaic/snpcall"
)

var intervalHeader = []string{"label", "snps", "start_p1", "end_p1", "start_p2", "end_p2", "start_r", "end_r"}

func readAndSegment(ctx context.Context, path string, receptor snpcall.Label, opts origin.Opts) ([]segment.Interval, error) {
	calls, err := snptable.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	s, err := origin.Segment(calls, receptor, opts)
	if err != nil {
		return nil, err
	}
	for _, m := range s.Assignment.Malformed {
		log.Error.Printf("%s: skipped %v", path, m)
	}
	return s.Intervals, nil
}

func writeIntervals(w io.Writer, intervals []segment.Interval, idx []int) error {
	tw := tsv.NewWriter(w)
	for _, h := range intervalHeader {
		tw.WriteString(h)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, i := range idx {
		iv := intervals[i]
		tw.WriteString(iv.Label.String())
		tw.WriteInt64(int64(iv.SNPs))
		for _, s := range iv.Spans {
			tw.WriteInt64(int64(s.Start))
			tw.WriteInt64(int64(s.End))
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// segmentTable prints all intervals of the table at path.
func segmentTable(ctx context.Context, w io.Writer, path string, receptor snpcall.Label, opts origin.Opts) error {
	intervals, err := readAndSegment(ctx, path, receptor, opts)
	if err != nil {
		return err
	}
	idx := make([]int, len(intervals))
	for i := range idx {
		idx[i] = i
	}
	return writeIntervals(w, intervals, idx)
}

// locateRegion prints the intervals of the table at path that overlap
// region.  The region name selects the coordinate system.
func locateRegion(ctx context.Context, w io.Writer, path, region string, receptor snpcall.Label, opts origin.Opts) error {
	r, err := interval.ParseRegionString(region)
	if err != nil {
		return errors.E(errors.Invalid, err.Error())
	}
	g, err := snpcall.ParseGenome(r.Name)
	if err != nil {
		return err
	}
	intervals, err := readAndSegment(ctx, path, receptor, opts)
	if err != nil {
		return err
	}
	idx := interval.NewIndex(segment.Spans(intervals, g)).Overlap(r.Span)
	log.Debug.Printf("locate: %s %v: %d of %d intervals", g, r.Span, len(idx), len(intervals))
	if len(idx) == 0 {
		log.Printf("locate: no interval overlaps %s:%d-%d", g, r.Start, r.End)
	}
	return writeIntervals(w, intervals, idx)
}
