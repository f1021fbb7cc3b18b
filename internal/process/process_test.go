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

package process

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aqlab/aqingest/internal/frame"
	"github.com/stretchr/testify/require"
)

const rawSample = `date,location,city,country,parameter,value,unit
2024-01-01,Oak Park,Chicago,US,pm25,12.5,µg/m³
2024-01-01,Station 9,,FR,o3,0.061,ppm
2024-01-02,Borivali,Mumbai,IN,no2,,ppm
2024-01-02,Borivali,Mumbai,IN,so2,4,ppm
`

func sampleFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.Read(strings.NewReader(rawSample))
	require.NoError(t, err)
	return f
}

func TestPlan(t *testing.T) {
	r := require.New(t)

	f := sampleFrame(t)
	keep, requireCol := Options{}.withDefaults().plan(f)
	r.Equal([]string{"location", "city", "country", "parameter", "value", "unit"}, keep)
	r.Equal("value", requireCol)

	// Unknown selections are dropped; a missing filter column
	// disables the filter.
	keep, requireCol = Options{
		Select:  []string{"city", "concentration", "location"},
		Require: "concentration",
	}.plan(f)
	r.Equal([]string{"city", "location"}, keep)
	r.Equal("", requireCol)

	// A dataset sharing no columns with the selection passes
	// through whole.
	other, err := frame.Read(strings.NewReader("a,b\n1,2\n"))
	r.NoError(err)
	keep, requireCol = Options{}.withDefaults().plan(other)
	r.Equal([]string{"a", "b"}, keep)
	r.Equal("", requireCol)
}

func TestDuckQuery(t *testing.T) {
	r := require.New(t)

	q := duckQuery("/tmp/stage.csv", []string{"location", "value"}, "value")
	r.Equal(`SELECT "location", "value" FROM read_csv_auto('/tmp/stage.csv', header = true)`+
		` WHERE "value" IS NOT NULL`, q)

	// Identifier and path quoting.
	q = duckQuery("/tmp/it's.csv", []string{`va"lue`}, "")
	r.Equal(`SELECT "va""lue" FROM read_csv_auto('/tmp/it''s.csv', header = true)`, q)
}

func TestMemoryClean(t *testing.T) {
	r := require.New(t)

	out, err := NewMemory(Options{}).Clean(context.Background(), sampleFrame(t))
	r.NoError(err)
	r.Equal([]string{"location", "city", "country", "parameter", "value", "unit"}, out.Columns)
	r.Equal(3, out.Len(), "the row with an empty value cell is dropped")
	r.Equal("Oak Park", out.Rows[0][0])
	r.Equal(12.5, out.Rows[0][4])
	r.Nil(out.Rows[1][1], "empty city survives as nil")
	r.Equal(4.0, out.Rows[2][4])
}

func TestMemoryCleanWithoutFilterColumn(t *testing.T) {
	r := require.New(t)

	f, err := frame.Read(strings.NewReader("location,city\nA,B\n,\n"))
	r.NoError(err)

	out, err := NewMemory(Options{}).Clean(context.Background(), f)
	r.NoError(err)
	r.Equal(2, out.Len(), "no value column means no rows are dropped")
	r.Equal([]string{"location", "city"}, out.Columns)
}

func TestMemoryCleanNoAnalyticColumns(t *testing.T) {
	r := require.New(t)

	f, err := frame.Read(strings.NewReader("a,b\n1,2\n"))
	r.NoError(err)

	out, err := NewMemory(Options{}).Clean(context.Background(), f)
	r.NoError(err)
	r.Equal([]string{"a", "b"}, out.Columns, "an unrecognized dataset passes through whole")
	r.Equal(1, out.Len())
	r.Equal(1.0, out.Rows[0][0])
}

// TestMemoryCleanPersists checks that the engine writes its output
// when a processed path is set, creating directories as needed.
func TestMemoryCleanPersists(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "nested", "clean.csv")
	out, err := NewMemory(Options{ProcessedPath: path}).Clean(context.Background(), sampleFrame(t))
	r.NoError(err)

	saved, err := frame.ReadFile(path)
	r.NoError(err)
	r.Equal(out.Columns, saved.Columns)
	r.Equal(out.Rows, saved.Rows)
}

func TestMemoryCleanCanceled(t *testing.T) {
	r := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory(Options{}).Clean(ctx, sampleFrame(t))
	r.ErrorIs(err, context.Canceled)
}

// startDuck runs Clean on the embedded engine, skipping the test when
// the engine cannot start on this platform.
func startDuck(t *testing.T, opts Options, f *frame.Frame) *frame.Frame {
	t.Helper()
	out, err := NewDuck(opts).Clean(context.Background(), f)
	if err != nil && strings.Contains(err.Error(), "could not start duckdb engine") {
		t.Skipf("embedded engine unavailable: %v", err)
	}
	require.NoError(t, err)
	return out
}

func TestDuckClean(t *testing.T) {
	r := require.New(t)

	out := startDuck(t, Options{}, sampleFrame(t))
	r.Equal([]string{"location", "city", "country", "parameter", "value", "unit"}, out.Columns)
	r.Equal(3, out.Len())
	r.Equal(12.5, out.Rows[0][4])
	r.Equal("µg/m³", out.Rows[0][5])
}

func TestDuckCleanPersists(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "clean.csv")
	out := startDuck(t, Options{ProcessedPath: path}, sampleFrame(t))

	saved, err := frame.ReadFile(path)
	r.NoError(err)
	r.Equal(out.Columns, saved.Columns)
	r.Equal(out.Len(), saved.Len())
}

// TestEngineParity checks that the embedded engine and the in-memory
// fallback agree, both on well-formed input and on a dataset that
// passes through whole.
func TestEngineParity(t *testing.T) {
	identity, err := frame.Read(strings.NewReader("a,b\n1,2\n3,\n"))
	require.NoError(t, err)

	for name, f := range map[string]*frame.Frame{
		"sample":   sampleFrame(t),
		"identity": identity,
	} {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)

			duck := startDuck(t, Options{}, f)
			mem, err := NewMemory(Options{}).Clean(context.Background(), f)
			r.NoError(err)

			r.Equal(mem.Columns, duck.Columns)
			r.Equal(mem.Rows, duck.Rows)
		})
	}
}
