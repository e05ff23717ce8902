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
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	pkgerrors "github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

// Format selects the on-disk layout of a report.
type Format string

const (
	// XLSX writes one workbook with one sheet per table.
	XLSX Format = "xlsx"
	// TSV writes one tab-separated file per table.
	TSV Format = "tsv"
	// TSVBGZ is TSV, BGZF-compressed.
	TSVBGZ Format = "tsv-bgz"
)

// ParseFormat parses "xlsx", "tsv" or "tsv-bgz".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case XLSX, TSV, TSVBGZ:
		return f, nil
	}
	return "", errors.E(errors.Invalid, fmt.Sprintf("report: unknown format %q (expected xlsx, tsv or tsv-bgz)", s))
}

// bgzfParallelism is the number of compression shards per output file.
const bgzfParallelism = 2

// Prefix returns the output path prefix for a report on inputPath:
// <outDir>/<input stem>_origin, followed by _YYYY-MM-DD_HHMM if stamp is
// nonzero.  An empty outDir means the input's directory.
func Prefix(outDir, inputPath string, stamp time.Time) string {
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	base := filepath.Base(inputPath)
	for {
		ext := filepath.Ext(base)
		if ext == "" || ext == base {
			break
		}
		base = strings.TrimSuffix(base, ext)
		if ext != ".gz" {
			break
		}
	}
	name := base + "_origin"
	if !stamp.IsZero() {
		name += stamp.Format("_2006-01-02_1504")
	}
	return filepath.Join(outDir, name)
}

// Paths returns the files Write creates for prefix and format, one per table
// for TSV formats.
func Paths(prefix string, format Format) []string {
	switch format {
	case XLSX:
		return []string{prefix + ".xlsx"}
	case TSV, TSVBGZ:
		var paths []string
		for _, name := range tableNames {
			p := prefix + "." + name + ".tsv"
			if format == TSVBGZ {
				p += ".gz"
			}
			paths = append(paths, p)
		}
		return paths
	}
	return nil
}

// Write renders r and stores it under prefix.  It returns the paths written.
func Write(ctx context.Context, prefix string, format Format, r *Report) ([]string, error) {
	tables := r.Tables()
	paths := Paths(prefix, format)
	switch format {
	case XLSX:
		if err := writeFile(ctx, paths[0], func(w io.Writer) error { return WriteXLSX(w, tables) }); err != nil {
			return nil, err
		}
	case TSV, TSVBGZ:
		for i, t := range tables {
			t := t
			write := func(w io.Writer) error { return WriteTSV(w, t) }
			if format == TSVBGZ {
				write = func(w io.Writer) (err error) {
					bw := bgzf.NewWriter(w, bgzfParallelism)
					defer func() {
						if e := bw.Close(); e != nil && err == nil {
							err = e
						}
					}()
					return WriteTSV(bw, t)
				}
			}
			if err := writeFile(ctx, paths[i], write); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.E(errors.Invalid, fmt.Sprintf("report.Write: unknown format %q", format))
	}
	for _, p := range paths {
		log.Printf("report: wrote %s", p)
	}
	return paths, nil
}

func writeFile(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return errors.E(err, fmt.Sprintf("report: create %s", path))
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = write(out.Writer(ctx)); err != nil {
		return errors.E(err, fmt.Sprintf("report: write %s", path))
	}
	return nil
}

// WriteTSV writes t with a header row.
func WriteTSV(w io.Writer, t Table) error {
	tw := tsv.NewWriter(w)
	for _, c := range t.Columns {
		tw.WriteString(c.Name)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, row := range t.Rows {
		for _, cell := range row {
			tw.WriteString(cell)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteXLSX writes tables as the sheets of one workbook.
func WriteXLSX(w io.Writer, tables []Table) error {
	wb := xlsx.NewFile()
	for _, t := range tables {
		sheet, err := wb.AddSheet(t.Name)
		if err != nil {
			return pkgerrors.Wrapf(err, "report: adding sheet %s", t.Name)
		}
		row := sheet.AddRow()
		for _, c := range t.Columns {
			row.AddCell().SetString(c.Name)
		}
		for _, cells := range t.Rows {
			row = sheet.AddRow()
			for i, v := range cells {
				cell := row.AddCell()
				if !t.Columns[i].Numeric {
					cell.SetString(v)
					continue
				}
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return pkgerrors.Wrapf(err, "report: sheet %s, column %s", t.Name, t.Columns[i].Name)
				}
				cell.SetInt64(n)
			}
		}
	}
	return pkgerrors.Wrap(wb.Write(w), "report: writing workbook")
}
