package artifactmeta

import (
	"bytes"
	"fmt"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/fileutils"
	"github.com/PhaserEditor2D/assetprep/internal/hash"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
	"github.com/PhaserEditor2D/assetprep/internal/osutils/lockfile"
)

// NoMatchError is returned in strict mode when the descriptor has no artifact with the requested id
type NoMatchError struct {
	Descriptor string
	ArtifactID string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no artifact with id %s in %s", e.ArtifactID, e.Descriptor)
}

// Patcher updates a descriptor file from a binary on disk
type Patcher struct {
	Binary     string
	Descriptor string
	ArtifactID string
	// Strict turns a descriptor without a matching artifact into an error
	Strict bool
	// DryRun computes the changes and their diff without writing or locking anything
	DryRun bool
}

// Outcome is what a patch run found and did
type Outcome struct {
	Binary     string       `json:"binary"`
	Descriptor string       `json:"descriptor"`
	ArtifactID string       `json:"artifactId"`
	Digests    hash.Digests `json:"digests"`
	Result
	Written bool   `json:"written"`
	Diff    string `json:"diff,omitempty"`
}

// Patch hashes the binary and rewrites the descriptor in place. The descriptor is only written when its content
// changed, and not at all on a dry run.
func (p *Patcher) Patch() (*Outcome, error) {
	digests, err := hash.File(p.Binary)
	if err != nil {
		return nil, errs.Wrap(err, "Could not read binary")
	}
	logging.Debug("Binary %s: size=%d md5=%s sha256=%s", p.Binary, digests.Size, digests.MD5, digests.SHA256)

	if !p.DryRun {
		lock := lockfile.For(p.Descriptor)
		if err := lock.TryLock(); err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logging.Error("Could not release descriptor lock: %v", errs.JoinMessage(err))
			}
		}()
	}

	doc, err := fileutils.ReadFile(p.Descriptor)
	if err != nil {
		return nil, errs.Wrap(err, "Could not read artifact descriptor")
	}

	patched, result, err := Apply(doc, p.ArtifactID, digests)
	if err != nil {
		return nil, errs.Wrap(err, "Could not patch %s", p.Descriptor)
	}

	outcome := &Outcome{
		Binary:     p.Binary,
		Descriptor: p.Descriptor,
		ArtifactID: p.ArtifactID,
		Digests:    digests,
		Result:     *result,
	}

	if result.MatchedArtifacts == 0 {
		if p.Strict {
			return outcome, &NoMatchError{Descriptor: p.Descriptor, ArtifactID: p.ArtifactID}
		}
		logging.Debug("No artifact %s in %s, leaving it untouched", p.ArtifactID, p.Descriptor)
		return outcome, nil
	}

	if p.DryRun {
		outcome.Diff = Diff(string(doc), string(patched))
		return outcome, nil
	}

	if bytes.Equal(doc, patched) {
		logging.Debug("%s is already up to date", p.Descriptor)
		return outcome, nil
	}

	if err := fileutils.WriteFile(p.Descriptor, patched); err != nil {
		return outcome, errs.Wrap(err, "Could not write artifact descriptor")
	}
	outcome.Written = true

	return outcome, nil
}
