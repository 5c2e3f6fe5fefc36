package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// DirectURL is the PEP 610 direct_url.json document.
type DirectURL struct {
	URL          string       `json:"url"`
	Subdirectory string       `json:"subdirectory,omitempty"`
	DirInfo      *DirInfo     `json:"dir_info,omitempty"`
	ArchiveInfo  *ArchiveInfo `json:"archive_info,omitempty"`
	VCSInfo      *VCSInfo     `json:"vcs_info,omitempty"`
}

// DirInfo describes a local directory install.
type DirInfo struct {
	Editable bool `json:"editable,omitempty"`
}

// ArchiveInfo describes an archive install.
type ArchiveInfo struct {
	Hash   string            `json:"hash,omitempty"`
	Hashes map[string]string `json:"hashes,omitempty"`
}

// VCSInfo describes a version control install.
type VCSInfo struct {
	VCS               string `json:"vcs"`
	RequestedRevision string `json:"requested_revision,omitempty"`
	CommitID          string `json:"commit_id,omitempty"`
}

// ParseDirectURL decodes a direct_url.json document. Exactly one of
// dir_info, archive_info or vcs_info must be present.
func ParseDirectURL(data []byte) (*DirectURL, error) {
	var d DirectURL
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, zerr.Wrap(err, ErrInvalidDirectURL.Error())
	}
	if d.URL == "" {
		return nil, zerr.With(ErrInvalidDirectURL, "reason", "missing url")
	}
	infos := 0
	for _, present := range []bool{d.DirInfo != nil, d.ArchiveInfo != nil, d.VCSInfo != nil} {
		if present {
			infos++
		}
	}
	if infos != 1 {
		return nil, zerr.With(ErrInvalidDirectURL, "reason", "expected exactly one of dir_info, archive_info, vcs_info")
	}
	return &d, nil
}

// Marshal encodes the document.
func (d *DirectURL) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Provenance converts the document into the matching provenance variant.
func (d *DirectURL) Provenance() Provenance {
	switch {
	case d.DirInfo != nil:
		return DirectoryProvenance{URL: d.URL, Editable: d.DirInfo.Editable}
	case d.VCSInfo != nil:
		return VCSProvenance{
			URL:               d.URL,
			VCS:               d.VCSInfo.VCS,
			CommitID:          d.VCSInfo.CommitID,
			RequestedRevision: d.VCSInfo.RequestedRevision,
			Subdirectory:      d.Subdirectory,
		}
	default:
		return ArchiveProvenance{URL: d.URL, Subdirectory: d.Subdirectory}
	}
}
