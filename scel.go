//
// Copyright (C) 2023 Quan Chen <chenquan_act@163.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package scel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("scel")

// Scel is a SCEL cell dictionary held in memory. The whole file is read up
// front because every offset in the format is absolute.
type Scel struct {
	filePath string
	data     []byte
}

// Open reads the file at path and validates its header.
func Open(path string) (*Scel, error) {
	log.Infof("Reading scel file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scel file '%s': %w", path, err)
	}
	return New(path, data)
}

// New wraps an in-memory buffer. name is only used for logging and Name.
func New(name string, data []byte) (*Scel, error) {
	if err := ValidateHeader(data); err != nil {
		return nil, fmt.Errorf("invalid scel file '%s': %w", name, err)
	}
	return &Scel{filePath: name, data: data}, nil
}

// Name returns the file name without its extension.
func (s *Scel) Name() string {
	base := filepath.Base(s.filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Path returns the path the dictionary was opened from.
func (s *Scel) Path() string {
	return s.filePath
}

// Size returns the size of the file in bytes.
func (s *Scel) Size() int {
	return len(s.data)
}

// Info returns the header metadata.
func (s *Scel) Info() (*ScelInfo, error) {
	return ParseInfo(s.data)
}

// Fingerprint returns the content fingerprint of the file.
func (s *Scel) Fingerprint() string {
	return Fingerprint(s.data)
}

// Records decodes all dictionary records. opts may be nil.
func (s *Scel) Records(opts *DecodeOptions) ([]*Record, error) {
	return s.RecordsContext(context.Background(), opts)
}

// RecordsContext is like Records but stops once ctx is done.
func (s *Scel) RecordsContext(ctx context.Context, opts *DecodeOptions) ([]*Record, error) {
	records, err := DecodeContext(ctx, s.data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", s.filePath, err)
	}
	return records, nil
}

// ReadInfo reads only the header metadata of the file at path.
func ReadInfo(path string) (*ScelInfo, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	return s.Info()
}

// ReadRecords reads and decodes every record of the file at path.
func ReadRecords(path string, opts *DecodeOptions) ([]*Record, error) {
	return ReadRecordsContext(context.Background(), path, opts)
}

// ReadRecordsContext is like ReadRecords but stops once ctx is done.
func ReadRecordsContext(ctx context.Context, path string, opts *DecodeOptions) ([]*Record, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	return s.RecordsContext(ctx, opts)
}
