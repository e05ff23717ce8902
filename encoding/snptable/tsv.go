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

package snptable

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/mosaic/snpcall"
)

// tsvRow is one data row of a tab-separated SNP table.  Positions are read
// as strings so that empty cells can default to 0.
type tsvRow struct {
	Pattern string `tsv:"SNP pattern"`
	PosP1   string `tsv:"sequence_1_PosInContg"`
	PosP2   string `tsv:"sequence_2_PosInContg"`
	PosR    string `tsv:"sequence_3_PosInContg"`
}

// ReadTSV parses a tab-separated SNP table with a header row.  Columns other
// than Columns are ignored.
func ReadTSV(r io.Reader) ([]snpcall.Call, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if strings.TrimSpace(header) == "" {
		return nil, errors.E(errors.Invalid, "snptable: missing header row")
	}
	if _, err = columnIndex(strings.Split(strings.TrimRight(header, "\r\n"), "\t")); err != nil {
		return nil, err
	}

	tr := tsv.NewReader(io.MultiReader(strings.NewReader(header), br))
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	var calls []snpcall.Call
	for n := 1; ; n++ {
		var row tsvRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		c, err := record(n, row.Pattern, []string{row.PosP1, row.PosP2, row.PosR})
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, nil
}

// WriteTSV writes calls as a tab-separated SNP table that ReadTSV accepts.
func WriteTSV(w io.Writer, calls []snpcall.Call) error {
	tw := tsv.NewWriter(w)
	for _, col := range Columns {
		tw.WriteString(col)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, c := range calls {
		tw.WriteString(c.Pattern)
		for _, p := range c.Pos {
			tw.WriteString(strconv.FormatInt(p, 10))
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
