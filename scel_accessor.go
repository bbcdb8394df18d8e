package scel

import (
	"encoding/hex"
	"encoding/json"

	"github.com/c0mm4nd/go-ripemd"
)

// ScelAccessor is a serialisable snapshot of a dictionary's metadata,
// suitable for caching or handing to a remote process that can reopen the
// file by path.
type ScelAccessor struct {
	Filepath    string    `json:"filepath"`
	Fingerprint string    `json:"fingerprint"`
	Size        int       `json:"size"`
	Info        *ScelInfo `json:"info"`
}

// NewAccessor creates a new ScelAccessor from a Scel instance.
func NewAccessor(s *Scel) (*ScelAccessor, error) {
	info, err := s.Info()
	if err != nil {
		return nil, err
	}
	return &ScelAccessor{
		Filepath:    s.filePath,
		Fingerprint: s.Fingerprint(),
		Size:        s.Size(),
		Info:        info,
	}, nil
}

// NewAccessorFromJSON creates a new ScelAccessor from a JSON byte slice.
func NewAccessorFromJSON(data []byte) (*ScelAccessor, error) {
	sa := new(ScelAccessor)
	err := json.Unmarshal(data, sa)
	return sa, err
}

// Serialize converts the ScelAccessor to its JSON representation.
func (sa *ScelAccessor) Serialize() ([]byte, error) {
	return json.Marshal(sa)
}

// RetrieveRecords reopens the file and decodes its records.
func (sa *ScelAccessor) RetrieveRecords(opts *DecodeOptions) ([]*Record, error) {
	return ReadRecords(sa.Filepath, opts)
}

// Fingerprint returns the hex RIPEMD-128 digest of data.
func Fingerprint(data []byte) string {
	h := ripemd.New128()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
