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

// Package licenses bundles the license files for the go modules that
// are redistributed inside a release binary.
package licenses

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//go:generate go run github.com/google/go-licenses save ../../.. --save_path ./data/licenses --force

//go:embed data
var data embed.FS

// base is where the go:generate invocation above deposits the notice
// files. The directory is not checked in; release builds create it.
const base = "data/licenses"

// Command prints the license text for every module captured in the
// embedded data tree.
func Command() *cobra.Command {
	return &cobra.Command{
		Args:  cobra.NoArgs,
		Short: "print licenses for redistributed modules",
		Use:   "licenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout())
		},
	}
}

// report walks the embedded tree in module-path order.
func report(w io.Writer) error {
	return fs.WalkDir(data, base, func(name string, d fs.DirEntry, err error) error {
		switch {
		case os.IsNotExist(err):
			return errors.New("development binaries should not be distributed")
		case err != nil:
			return err
		case d.IsDir():
			return nil
		}

		module := strings.TrimPrefix(path.Dir(name), base+"/")
		if _, err := fmt.Fprintf(w, "Module %s:\n\n", module); err != nil {
			return err
		}
		buf, err := data.ReadFile(name)
		if err != nil {
			return errors.Wrap(err, name)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
		_, err = fmt.Fprint(w, "\n--------\n\n")
		return err
	})
}
