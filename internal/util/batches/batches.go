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

// Package batches contains support code for splitting work into
// size-bounded chunks.
package batches

const defaultSize = 1000

// Batch is a helper to perform some operation over a large number
// of values in a batch-oriented fashion. The indexes provided to
// the callback function are a half-open range [begin , end).
func Batch(size, count int, fn func(begin, end int) error) error {
	if size < 1 {
		size = defaultSize
	}
	consume := size
	idx := 0
	for {
		if consume > count {
			consume = count
		}
		if err := fn(idx, idx+consume); err != nil {
			return err
		}
		if consume == count {
			return nil
		}
		idx += consume
		count -= consume
	}
}
