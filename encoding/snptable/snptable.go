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

// Package snptable reads the SNP tables exported by MAUVE, as tab-separated
// text or as workbooks.
package snptable

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/mosaic/snpcall"
	"github.com/grailbio/mosaic/util"
	"github.com/klauspost/compress/gzip"
)

// Column names of a MAUVE SNP export.
const (
	ColPattern = "SNP pattern"
	ColPosP1   = "sequence_1_PosInContg"
	ColPosP2   = "sequence_2_PosInContg"
	ColPosR    = "sequence_3_PosInContg"
)

// Columns lists the required columns.  The position columns are in
// snpcall.Genome order.
var Columns = []string{ColPattern, ColPosP1, ColPosP2, ColPosR}

// Read parses the SNP table at path.  Files named *.xlsx or *.xlsm are read
// as workbooks (first worksheet only); anything else is read as
// tab-separated text, gunzipped if fileio detects gzip.
func Read(ctx context.Context, path string) (calls []snpcall.Call, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, fmt.Sprintf("snptable.Read %s", path))
	}
	defer file.CloseAndReport(ctx, in, &err)

	r := io.Reader(in.Reader(ctx))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		calls, err = ReadXLSX(r)
	default:
		if fileio.DetermineType(path) == fileio.Gzip {
			var gz *gzip.Reader
			if gz, err = gzip.NewReader(r); err != nil {
				return nil, errors.E(err, fmt.Sprintf("snptable.Read %s", path))
			}
			defer gz.Close() // nolint: errcheck
			r = gz
		}
		calls, err = ReadTSV(r)
	}
	if err != nil {
		return nil, errors.E(err, fmt.Sprintf("snptable.Read %s", path))
	}
	log.Debug.Printf("snptable.Read: %s: %d rows", path, len(calls))
	return calls, nil
}

// columnIndex maps each of Columns to its index in header.  A missing
// column is reported with the closest header that no other column matched.
func columnIndex(header []string) ([]int, error) {
	idx := make([]int, len(Columns))
	claimed := make([]bool, len(header))
	for i, name := range Columns {
		idx[i] = -1
		for j, h := range header {
			if !claimed[j] && strings.TrimSpace(h) == name {
				idx[i] = j
				claimed[j] = true
				break
			}
		}
	}
	var unclaimed []string
	for j, h := range header {
		if !claimed[j] && strings.TrimSpace(h) != "" {
			unclaimed = append(unclaimed, h)
		}
	}
	for i, name := range Columns {
		if idx[i] >= 0 {
			continue
		}
		msg := fmt.Sprintf("snptable: missing column %q", name)
		if best, _ := util.Closest(name, unclaimed); best != "" {
			msg += fmt.Sprintf(" (closest header: %q)", best)
		}
		return nil, errors.E(errors.Invalid, msg)
	}
	return idx, nil
}

// parsePos parses a position cell.  Empty cells read as 0.  Spreadsheet
// exports sometimes store integers as floats; those are accepted as long as
// they are integral.
func parsePos(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int64(f), nil
}

// record builds the call for data row n from its raw cells.
func record(n int, pattern string, pos []string) (snpcall.Call, error) {
	c := snpcall.Call{Row: n, Pattern: strings.TrimSpace(pattern)}
	for g := range c.Pos {
		v, err := parsePos(pos[g])
		if err != nil {
			return c, errors.E(errors.Invalid,
				fmt.Sprintf("snptable: row %d, column %q: %v", n, Columns[g+1], err))
		}
		c.Pos[g] = v
	}
	return c, nil
}

// Checksum returns a digest of calls' patterns and positions, used to tell
// whether two runs saw the same table.  Row numbers are not included.
func Checksum(calls []snpcall.Call) uint64 {
	h := seahash.New()
	for _, c := range calls {
		writeCall(h, c)
	}
	return h.Sum64()
}

func writeCall(h hash.Hash64, c snpcall.Call) {
	var buf [8]byte
	h.Write([]byte(c.Pattern)) // nolint: errcheck
	h.Write([]byte{0})         // nolint: errcheck
	for _, p := range c.Pos {
		binary.LittleEndian.PutUint64(buf[:], uint64(p))
		h.Write(buf[:]) // nolint: errcheck
	}
}
