package hash

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// Digests holds the size and checksums of a file, checksums are lowercase hex.
type Digests struct {
	Size   int64  `json:"size"`
	MD5    string `json:"md5"`
	SHA256 string `json:"sha256"`
}

// Compute reads r to the end once, feeding both hashes.
func Compute(r io.Reader) (Digests, error) {
	md5Hasher := md5.New()
	sha256Hasher := sha256.New()

	n, err := io.Copy(io.MultiWriter(md5Hasher, sha256Hasher), r)
	if err != nil {
		return Digests{}, errs.Wrap(err, "Could not hash contents")
	}

	return Digests{
		Size:   n,
		MD5:    hex.EncodeToString(md5Hasher.Sum(nil)),
		SHA256: hex.EncodeToString(sha256Hasher.Sum(nil)),
	}, nil
}

// File computes the digests of the file at path. The file must exist and be a regular file.
func File(path string) (Digests, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Digests{}, errs.Wrap(err, "Could not stat file: %s", path)
	}
	if !fi.Mode().IsRegular() {
		return Digests{}, errs.New("Not a regular file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Digests{}, errs.Wrap(err, "Could not open file: %s", path)
	}
	defer f.Close()

	logging.Debug("Hashing %s (%d bytes)", path, fi.Size())
	d, err := Compute(f)
	if err != nil {
		return Digests{}, errs.Wrap(err, "Could not hash file: %s", path)
	}
	return d, nil
}
