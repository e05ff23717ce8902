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
	"io"
	"io/ioutil"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/mosaic/snpcall"
	pkgerrors "github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

func cellString(row *xlsx.Row, i int) string {
	if row == nil || i >= len(row.Cells) || row.Cells[i] == nil {
		return ""
	}
	return row.Cells[i].String()
}

// ReadXLSX parses the first worksheet of a workbook.  The first row is the
// header; rows whose required cells are all empty are skipped.
func ReadXLSX(r io.Reader) ([]snpcall.Call, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "snptable: reading workbook")
	}
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "snptable: parsing workbook (%d bytes)", len(data))
	}
	if len(wb.Sheets) == 0 || len(wb.Sheets[0].Rows) == 0 {
		return nil, errors.E(errors.Invalid, "snptable: workbook has no header row")
	}
	rows := wb.Sheets[0].Rows
	header := make([]string, 0, len(rows[0].Cells))
	for i := range rows[0].Cells {
		header = append(header, cellString(rows[0], i))
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var calls []snpcall.Call
	pos := make([]string, len(idx)-1)
	for n, row := range rows[1:] {
		pattern := cellString(row, idx[0])
		empty := pattern == ""
		for g := range pos {
			pos[g] = cellString(row, idx[g+1])
			empty = empty && pos[g] == ""
		}
		if empty {
			continue
		}
		c, err := record(n+1, pattern, pos)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, nil
}
