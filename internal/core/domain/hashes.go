package domain

// Hash algorithms recorded in lockfiles.
const (
	HashMD5    = "md5"
	HashSHA256 = "sha256"
)

// PackageHashes holds the digests a lockfile records for an artifact.
// Either field may be empty.
type PackageHashes struct {
	MD5    string
	SHA256 string
}

// HashDigest is a single algorithm and hex digest pair.
type HashDigest struct {
	Algorithm string
	Digest    string
}

// Digests returns the recorded digests, MD5 first.
func (h *PackageHashes) Digests() []HashDigest {
	if h == nil {
		return nil
	}
	var digests []HashDigest
	if h.MD5 != "" {
		digests = append(digests, HashDigest{Algorithm: HashMD5, Digest: h.MD5})
	}
	if h.SHA256 != "" {
		digests = append(digests, HashDigest{Algorithm: HashSHA256, Digest: h.SHA256})
	}
	return digests
}
