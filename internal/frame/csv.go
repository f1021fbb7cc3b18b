// Copyright 2026 The AQLab Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// gzipMagic is the two-byte signature at the start of every gzip
// stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Read decodes a CSV document into a Frame. The stream may be
// gzip-compressed; compression is detected from the leading bytes,
// not from any file name. The first record is taken as the header.
//
// Cells are typed individually: the empty string decodes to nil, a
// parseable finite number decodes to float64, and anything else is
// kept as a string.
func Read(r io.Reader) (*Frame, error) {
	buf := bufio.NewReader(r)
	magic, err := buf.Peek(2)
	if err != nil && err != io.EOF {
		return nil, errors.WithStack(err)
	}
	var src io.Reader = buf
	if len(magic) == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(buf)
		if err != nil {
			return nil, errors.Wrap(err, "could not open gzip stream")
		}
		defer func() { _ = gz.Close() }()
		src = gz
	}

	rows := csv.NewReader(src)
	rows.ReuseRecord = true

	header, err := rows.Read()
	if err == io.EOF {
		return nil, errors.New("empty dataset: no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read header row")
	}
	ret := New(append([]string(nil), header...)...)

	for {
		record, err := rows.Read()
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "could not read row %d", ret.Len()+2)
		}
		row := make([]any, len(record))
		for i, field := range record {
			row[i] = decodeCell(field)
		}
		ret.Rows = append(ret.Rows, row)
	}
}

// ReadFile decodes the CSV document at path. See Read.
func ReadFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer func() { _ = f.Close() }()
	ret, err := Read(f)
	return ret, errors.Wrapf(err, "reading %s", path)
}

// Write encodes the Frame as an uncompressed CSV document with a
// header row.
func Write(w io.Writer, f *Frame) error {
	out := csv.NewWriter(w)
	if err := out.Write(f.Columns); err != nil {
		return errors.WithStack(err)
	}
	record := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for i, cell := range row {
			record[i] = encodeCell(cell)
		}
		if err := out.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}
	out.Flush()
	return errors.WithStack(out.Error())
}

// WriteFile encodes the Frame to the named file, creating parent
// directories as needed.
func WriteFile(path string, f *Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithStack(err)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(out.Close(), "writing %s", path)
}

func decodeCell(field string) any {
	if field == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(field, 64); err == nil {
		if math.IsNaN(v) {
			// A literal NaN follows the empty-cell rule.
			return nil
		}
		if !math.IsInf(v, 0) {
			return v
		}
		// Infinities stay textual so the cell survives JSON encoding.
	}
	return field
}

func encodeCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		// Out-of-contract cells should not occur; keep them legible.
		return fmt.Sprint(v)
	}
}
