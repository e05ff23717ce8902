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

package report

import (
	"bytes"
	"compress/gzip"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grailbio/mosaic/interval"
	"github.com/grailbio/mosaic/segment"
	"github.com/grailbio/mosaic/snpcall"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func iv(l snpcall.Label, snps int, p1s, p1e, p2s, p2e, rs, re int64) segment.Interval {
	v := segment.Interval{Label: l, SNPs: snps}
	v.Spans[snpcall.GenomeP1] = interval.Span{Start: interval.PosType(p1s), End: interval.PosType(p1e)}
	v.Spans[snpcall.GenomeP2] = interval.Span{Start: interval.PosType(p2s), End: interval.PosType(p2e)}
	v.Spans[snpcall.GenomeR] = interval.Span{Start: interval.PosType(rs), End: interval.PosType(re)}
	return v
}

func testReport() *Report {
	recv := []segment.Interval{
		iv(snpcall.P1, 6, 100, 599, 1100, 1599, 10, 509),
		iv(snpcall.P2, 3, 600, 800, 1600, 1800, 510, 710),
	}
	donor := []segment.Interval{
		iv(snpcall.P2, 4, 100, 300, 50, 250, 10, 210),
		iv(snpcall.P1, 5, 301, 900, 251, 850, 211, 810),
	}
	return &Report{
		Receptor:         snpcall.P1,
		Intervals:        recv,
		DonorIntervals:   donor,
		Summary:          segment.ReceptorSummary(recv, snpcall.GenomeP1, segment.DefaultLongFragment),
		Donor:            segment.DonorSummary(donor, snpcall.GenomeP2),
		Stats:            snpcall.AssignStats{Missing: 2},
		ReceptorChecksum: 0xabc,
		DonorChecksum:    0xdef,
		MinRunP1:         2,
		MinRunP2:         3,
	}
}

func TestTables(t *testing.T) {
	r := testReport()
	tables := r.Tables()
	require.Len(t, tables, 5)
	for i, tb := range tables {
		assert.Equal(t, tableNames[i], tb.Name)
		for _, row := range tb.Rows {
			assert.Len(t, row, len(tb.Columns), tb.Name)
		}
	}
	assert.Equal(t, [][]string{{"P1", "10", "509"}, {"P2", "510", "710"}}, tables[0].Rows)
	assert.Equal(t, []string{"P2", "3", "600", "800", "1600", "1800"}, tables[1].Rows[1])
	assert.Equal(t, []string{
		"P1", "P1", "499", "200", "P2", "1", "1", "1000", "0", "0", "2", "3", "2", "0", "0", "0000000000000abc",
	}, tables[2].Rows[0])
	assert.Equal(t, [][]string{{"P2", "50", "250"}, {"P1", "251", "850"}}, tables[3].Rows)
	assert.Equal(t, int64(200), r.DonorBases())
	assert.Equal(t, []string{"P2", "P2", "200", "599", "200", "0000000000000def"}, tables[4].Rows[0])
}

func TestPrefix(t *testing.T) {
	stamp := time.Date(2020, 3, 7, 9, 5, 0, 0, time.UTC)
	tests := []struct {
		outDir, input string
		stamp         time.Time
		want          string
	}{
		{"", "/data/snps_p1.xlsx", time.Time{}, "/data/snps_p1_origin"},
		{"/out", "/data/snps_p1.xlsx", time.Time{}, "/out/snps_p1_origin"},
		{"/out", "/data/snps.tsv.gz", time.Time{}, "/out/snps_origin"},
		{"/out", "snps", stamp, "/out/snps_origin_2020-03-07_0905"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Prefix(tt.outDir, tt.input, tt.stamp), tt.input)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"xlsx", "TSV", "tsv-bgz"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteTSV(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tempDir)
	ctx := context.Background()

	for _, format := range []Format{TSV, TSVBGZ} {
		prefix := filepath.Join(tempDir, "snps_"+string(format))
		paths, err := Write(ctx, prefix, format, testReport())
		require.NoError(t, err)
		require.Len(t, paths, 5)

		data, err := ioutil.ReadFile(paths[3])
		require.NoError(t, err)
		if format == TSVBGZ {
			assert.True(t, strings.HasSuffix(paths[3], ".tsv.gz"))
			gz, err := gzip.NewReader(bytes.NewReader(data))
			require.NoError(t, err)
			data, err = ioutil.ReadAll(gz)
			require.NoError(t, err)
		}
		assert.Equal(t, "label\tstart\tend\nP2\t50\t250\nP1\t251\t850\n", string(data))
	}
}

func TestWriteXLSX(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tempDir)

	paths, err := Write(context.Background(), filepath.Join(tempDir, "snps"), XLSX, testReport())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(tempDir, "snps.xlsx")}, paths)
	_, err = os.Stat(paths[0])
	require.NoError(t, err)

	wb, err := xlsx.OpenFile(paths[0])
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 5)
	for i, sheet := range wb.Sheets {
		assert.Equal(t, tableNames[i], sheet.Name)
	}
	summary := wb.Sheets[2]
	require.True(t, len(summary.Rows) >= 2)
	assert.Equal(t, "total_p1", summary.Rows[0].Cells[2].String())
	n, err := summary.Rows[1].Cells[2].Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(499), n)
	assert.Equal(t, "P2", summary.Rows[1].Cells[4].String())
}
