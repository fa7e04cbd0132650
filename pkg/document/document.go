// Copyright 2025 walteh LLC
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

// Package document loads a source file into memory and stores it back atomically.
package document

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 Document is the full text of a file between load and store
type Document struct {
	Path string
	Text string
	Mode os.FileMode

	original string
}

// 📥 Load reads the whole file at path. Bytes are kept as-is, no encoding is applied.
func Load(ctx context.Context, path string) (*Document, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading document")

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("reading %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	return &Document{
		Path:     path,
		Text:     string(data),
		Mode:     info.Mode().Perm(),
		original: string(data),
	}, nil
}

// 🔍 Changed reports whether Text differs from what was loaded
func (d *Document) Changed() bool {
	return d.Text != d.original
}

// 🔍 Original returns the text as it was loaded
func (d *Document) Original() string {
	return d.original
}

// 💾 Store writes the document back to its path. The new content goes to a
// temp file in the same directory which then replaces the original by rename,
// so a failed write never leaves a truncated file behind.
func Store(ctx context.Context, d *Document) error {
	zerolog.Ctx(ctx).Debug().Str("path", d.Path).Int("bytes", len(d.Text)).Msg("storing document")

	mode := d.Mode
	if mode == 0 {
		mode = 0o644
	}

	if err := renameio.WriteFile(d.Path, []byte(d.Text), mode); err != nil {
		return errors.Errorf("writing %s: %w", d.Path, err)
	}

	d.original = d.Text
	return nil
}

// 🏷️ Base returns the file name used in user facing messages
func (d *Document) Base() string {
	return filepath.Base(d.Path)
}
