package wheel

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
)

// RecordEntry is one row of a RECORD manifest. Paths are slash separated and
// relative to the directory holding the dist-info directory.
type RecordEntry struct {
	Path string
	Hash string
	Size int64
}

// ReadRecord parses a RECORD manifest.
func ReadRecord(r io.Reader) ([]RecordEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var entries []RecordEntry
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}

		entry := RecordEntry{Path: row[0], Size: -1}
		if len(row) > 1 {
			entry.Hash = row[1]
		}
		if len(row) > 2 && row[2] != "" {
			if size, err := strconv.ParseInt(row[2], 10, 64); err == nil {
				entry.Size = size
			}
		}
		entries = append(entries, entry)
	}
}

// ReadRecordFile is ReadRecord on the file at path.
func ReadRecordFile(path string) ([]RecordEntry, error) {
	// #nosec G304 -- RECORD paths come from the environment scan
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadRecord(f)
}

// WriteRecord writes entries as a RECORD manifest. Entries with a negative
// size are written without hash and size, as RECORD lists itself.
func WriteRecord(w io.Writer, entries []RecordEntry) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = false

	for _, e := range entries {
		row := []string{e.Path, "", ""}
		if e.Size >= 0 {
			row[1] = e.Hash
			row[2] = strconv.FormatInt(e.Size, 10)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// HashFile returns the RECORD hash (sha256, urlsafe base64 without padding) and size of path.
func HashFile(path string) (string, int64, error) {
	// #nosec G304 -- installed file paths
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return "sha256=" + base64.RawURLEncoding.EncodeToString(h.Sum(nil)), size, nil
}
