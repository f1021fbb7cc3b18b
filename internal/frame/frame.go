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

// Package frame defines the in-memory tabular dataset that moves
// between pipeline stages.
//
// A Frame is a header plus rows of cells. Cells are restricted to
// three dynamic types: string, float64, and nil (an absent value).
// Producers of a Frame are expected to maintain that restriction so
// that downstream consumers can switch on cell types without
// defensive casts.
package frame

// Kind classifies a column by the cells observed in it.
type Kind int

const (
	// Text columns hold string cells, or nothing at all.
	Text Kind = iota
	// Number columns hold at least one float64 cell and no strings.
	Number
)

// A Frame is a rectangular, row-oriented dataset. Every row has
// exactly len(Columns) cells.
type Frame struct {
	// Columns holds the header, in file order.
	Columns []string
	// Rows holds the data cells. Each cell is a string, a float64,
	// or nil.
	Rows [][]any
}

// New constructs an empty Frame with the given header.
func New(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// Column returns the index of the named column, or false if the
// Frame has no such column.
func (f *Frame) Column(name string) (int, bool) {
	for i, c := range f.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnKind reports whether the column at idx holds numbers or
// text. A column with no cells, or only nil cells, is Text.
func (f *Frame) ColumnKind(idx int) Kind {
	kind := Text
	for _, row := range f.Rows {
		switch row[idx].(type) {
		case float64:
			kind = Number
		case string:
			return Text
		}
	}
	return kind
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.Rows) }

// DropEmptyRows returns a copy of the Frame without the rows whose
// cells are all nil. The receiver is unchanged.
func (f *Frame) DropEmptyRows() *Frame {
	out := &Frame{Columns: f.Columns}
	for _, row := range f.Rows {
		empty := true
		for _, cell := range row {
			if cell != nil {
				empty = false
				break
			}
		}
		if !empty {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Select returns a new Frame restricted to the named columns, in the
// given order. Unknown names are ignored.
func (f *Frame) Select(names ...string) *Frame {
	var idx []int
	out := &Frame{}
	for _, name := range names {
		if i, ok := f.Column(name); ok {
			idx = append(idx, i)
			out.Columns = append(out.Columns, name)
		}
	}
	out.Rows = make([][]any, 0, len(f.Rows))
	for _, row := range f.Rows {
		next := make([]any, len(idx))
		for i, j := range idx {
			next[i] = row[j]
		}
		out.Rows = append(out.Rows, next)
	}
	return out
}
