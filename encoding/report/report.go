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

// Package report renders the result of an orientation as five tables and
// writes them as a workbook or as tab-separated files.
package report

import (
	"fmt"
	"strconv"

	"github.com/grailbio/mosaic/segment"
	"github.com/grailbio/mosaic/snpcall"
)

// Table names, used as sheet names and file name components.
const (
	TableRIntervals        = "r_intervals"
	TableReceptorIntervals = "receptor_intervals"
	TableReceptorSummary   = "receptor_summary"
	TableDonorIntervals    = "donor_intervals"
	TableDonorSummary      = "donor_summary"
)

var tableNames = []string{TableRIntervals, TableReceptorIntervals, TableReceptorSummary, TableDonorIntervals, TableDonorSummary}

// Column describes one column of a Table.
type Column struct {
	Name string
	// Numeric columns hold base-10 integers and are stored as numbers in
	// workbooks.
	Numeric bool
}

// Table is a rendered output table.  All cells are strings; Row[i] belongs
// to Columns[i].
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// Report holds the outcome of one orientation, i.e. one fixed choice of
// receptor and donor.
type Report struct {
	Receptor snpcall.Label
	// Intervals come from the receptor-sorted table, DonorIntervals from the
	// donor-sorted table.
	Intervals      []segment.Interval
	DonorIntervals []segment.Interval
	Summary        segment.Summary
	Donor          segment.DonorTotals
	// Stats describes the calls dropped from the receptor-sorted table.
	Stats snpcall.AssignStats
	// Checksums of the two input tables, from snptable.Checksum.
	ReceptorChecksum, DonorChecksum uint64
	MinRunP1, MinRunP2              int
}

// DonorBases is the donor summary scalar: the bases attributed to the donor
// in the donor's own coordinates.
func (r *Report) DonorBases() int64 {
	return r.Donor.Bases[r.Receptor.Other()]
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func checksum(v uint64) string { return fmt.Sprintf("%016x", v) }

func columns(numeric bool, names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Numeric: numeric}
	}
	return cols
}

// Tables renders the report as its five output tables, in writing order.
func (r *Report) Tables() []Table {
	space := r.Summary.Space
	rt := Table{
		Name:    TableRIntervals,
		Columns: append(columns(false, "label"), columns(true, "start", "end")...),
	}
	ct := Table{
		Name:    TableReceptorIntervals,
		Columns: append(columns(false, "label"), columns(true, "snps", "start_p1", "end_p1", "start_p2", "end_p2")...),
	}
	for _, iv := range r.Intervals {
		s := iv.Spans[snpcall.GenomeR]
		rt.Rows = append(rt.Rows, []string{iv.Label.String(), itoa(int64(s.Start)), itoa(int64(s.End))})
		p1, p2 := iv.Spans[snpcall.GenomeP1], iv.Spans[snpcall.GenomeP2]
		ct.Rows = append(ct.Rows, []string{iv.Label.String(), itoa(int64(iv.SNPs)),
			itoa(int64(p1.Start)), itoa(int64(p1.End)), itoa(int64(p2.Start)), itoa(int64(p2.End))})
	}

	s := r.Summary
	st := Table{
		Name: TableReceptorSummary,
		Columns: []Column{
			{Name: "receptor"}, {Name: "space"},
			{Name: "total_p1", Numeric: true}, {Name: "total_p2", Numeric: true},
			{Name: "min_label"},
			{Name: "fragments_p1", Numeric: true}, {Name: "fragments_p2", Numeric: true},
			{Name: "long_threshold", Numeric: true}, {Name: "long_fragments", Numeric: true}, {Name: "long_bases", Numeric: true},
			{Name: "min_run_p1", Numeric: true}, {Name: "min_run_p2", Numeric: true},
			{Name: "dropped_missing", Numeric: true}, {Name: "dropped_unmatched", Numeric: true}, {Name: "dropped_unaligned", Numeric: true},
			{Name: "checksum"},
		},
		Rows: [][]string{{
			r.Receptor.String(), space.String(),
			itoa(s.Bases[snpcall.P1]), itoa(s.Bases[snpcall.P2]),
			s.MinLabel.String(),
			itoa(int64(s.Fragments[snpcall.P1])), itoa(int64(s.Fragments[snpcall.P2])),
			itoa(s.LongThreshold), itoa(int64(s.LongFragments)), itoa(s.LongBases),
			itoa(int64(r.MinRunP1)), itoa(int64(r.MinRunP2)),
			itoa(int64(r.Stats.Missing)), itoa(int64(r.Stats.Unmatched)), itoa(int64(r.Stats.Unaligned)),
			checksum(r.ReceptorChecksum),
		}},
	}

	dt := Table{
		Name:    TableDonorIntervals,
		Columns: append(columns(false, "label"), columns(true, "start", "end")...),
	}
	for _, iv := range r.DonorIntervals {
		sp := iv.Spans[r.Donor.Space]
		dt.Rows = append(dt.Rows, []string{iv.Label.String(), itoa(int64(sp.Start)), itoa(int64(sp.End))})
	}
	ds := Table{
		Name: TableDonorSummary,
		Columns: []Column{
			{Name: "donor"}, {Name: "space"},
			{Name: "donor_bases", Numeric: true},
			{Name: "total_p1", Numeric: true}, {Name: "total_p2", Numeric: true},
			{Name: "checksum"},
		},
		Rows: [][]string{{
			r.Receptor.Other().String(), r.Donor.Space.String(),
			itoa(r.DonorBases()),
			itoa(r.Donor.Bases[snpcall.P1]), itoa(r.Donor.Bases[snpcall.P2]),
			checksum(r.DonorChecksum),
		}},
	}
	return []Table{rt, ct, st, dt, ds}
}
