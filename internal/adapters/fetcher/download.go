package fetcher

import (
	"context"
	"crypto/md5" //nolint:gosec // Lockfiles may only record md5
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

const downloadsDir = "downloads"

// staging creates a scratch directory for one distribution below the cache.
// The directory name starts with a digest of key so concurrent fetches never collide.
func (f *Fetcher) staging(env domain.Environment, key string) (string, func(), error) {
	root := filepath.Join(env.CacheDir, downloadsDir)
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", root)
	}
	dir, err := os.MkdirTemp(root, fmt.Sprintf("%016x-", xxhash.Sum64String(key)))
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", root)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// download writes u to dir/filename and checks it against hashes.
// It returns the path and the sha256 hex digest of the content.
func (f *Fetcher) download(
	ctx context.Context,
	u *url.URL,
	hashes *domain.PackageHashes,
	dir, filename string,
) (string, string, error) {
	if u.Scheme == "file" {
		path := domain.FileURLPath(u)
		digest, err := verifyFile(path, hashes)
		return path, digest, err
	}

	f.logger.Debug("downloading " + u.Redacted())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return "", "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", u.Redacted())
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", u.Redacted())
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", zerr.With(zerr.With(domain.ErrDownloadFailed, "url", u.Redacted()), "status", resp.Status)
	}

	path := filepath.Join(dir, filename)
	out, err := os.Create(path) //nolint:gosec // Path is inside the staging directory
	if err != nil {
		return "", "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", path)
	}
	digests := newDigests()
	if _, err := io.Copy(io.MultiWriter(out, digests), resp.Body); err != nil {
		_ = out.Close()
		return "", "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", u.Redacted())
	}
	if err := out.Close(); err != nil {
		return "", "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", path)
	}
	if err := digests.verify(hashes); err != nil {
		return "", "", zerr.With(err, "url", u.Redacted())
	}
	return path, digests.sha256(), nil
}

// verifyFile checks a local file against hashes and returns its sha256.
func verifyFile(path string, hashes *domain.PackageHashes) (string, error) {
	in, err := os.Open(path) //nolint:gosec // Path comes from the lockfile
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", path)
	}
	defer func() { _ = in.Close() }()

	digests := newDigests()
	if _, err := io.Copy(digests, in); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "path", path)
	}
	if err := digests.verify(hashes); err != nil {
		return "", zerr.With(err, "path", path)
	}
	return digests.sha256(), nil
}

type digests struct {
	io.Writer
	md5  hash.Hash
	sha2 hash.Hash
}

func newDigests() *digests {
	d := &digests{md5: md5.New(), sha2: sha256.New()} //nolint:gosec // Lockfiles may only record md5
	d.Writer = io.MultiWriter(d.md5, d.sha2)
	return d
}

func (d *digests) sha256() string {
	return hex.EncodeToString(d.sha2.Sum(nil))
}

// verify compares every digest the lock recorded.
func (d *digests) verify(hashes *domain.PackageHashes) error {
	for _, want := range hashes.Digests() {
		var got string
		switch want.Algorithm {
		case domain.HashMD5:
			got = hex.EncodeToString(d.md5.Sum(nil))
		case domain.HashSHA256:
			got = d.sha256()
		default:
			continue
		}
		if !strings.EqualFold(got, want.Digest) {
			return zerr.With(zerr.With(zerr.With(domain.ErrHashMismatch,
				"algorithm", want.Algorithm), "expected", want.Digest), "actual", got)
		}
	}
	return nil
}
