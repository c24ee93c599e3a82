package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// maxBinarySize caps how much of an archive entry is read into memory.
const maxBinarySize = 128 << 20

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrUnsupported   = errors.New("no release build for this platform")
)

// UpdateInput selects the version to install. An empty TargetVersion
// installs the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress reports one stage of an update.
type UpdateProgress struct {
	Stage   string
	Message string
}

// platform is an OS/architecture pair as release assets name them.
type platform struct {
	goos, goarch string
}

func hostPlatform() platform { return platform{goos: runtime.GOOS, goarch: runtime.GOARCH} }

var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// asset returns the archive name goreleaser publishes for p. macOS ships
// a single universal archive.
func (p platform) asset() (string, error) {
	if p.goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArch[p.goarch]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupported, p.goos, p.goarch)
	}
	switch p.goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrUnsupported, p.goos, p.goarch)
}

// executable is the file name inside the archive.
func (p platform) executable() string {
	if p.goos == "windows" {
		return binaryName + ".exe"
	}
	return binaryName
}

// release locates the downloadable files of one tagged release.
type release struct {
	base, owner, repo, tag string
}

func (r release) url(file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", strings.TrimRight(r.base, "/"), r.owner, r.repo, r.tag, file)
}

// Update downloads the release archive for this platform, verifies it
// against the release checksums and replaces the running executable.
// progress may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == DevVersion {
		return ErrDevBuild
	}
	if progress == nil {
		progress = func(UpdateProgress) {}
	}

	asset, err := c.platform.asset()
	if err != nil {
		return err
	}

	tag := input.TargetVersion
	if tag == "" {
		progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = result.LatestVersion
	}
	rel := release{base: c.downloadBaseURL, owner: c.owner, repo: c.repo, tag: tag}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s for %s/%s...", tag, c.platform.goos, c.platform.goarch)})
	archive, err := c.fetch(ctx, rel.url(asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetch(ctx, rel.url("checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums).lookup(asset)
	if !ok {
		return fmt.Errorf("%w: %s is not listed in checksums.txt", ErrChecksum, asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	bin, err := extractBinary(archive, asset, c.platform.executable())
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if err := replaceExecutable(target, bin); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("nookclass updated to %s", tag)})
	return nil
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBinarySize))
}

// checksums maps asset names to hex sha256 digests, as in goreleaser's
// checksums.txt.
type checksums map[string]string

func parseChecksums(data []byte) checksums {
	out := checksums{}
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		out[parts[1]] = strings.ToLower(parts[0])
	}
	return out
}

func (c checksums) lookup(asset string) (string, bool) {
	sum, ok := c[asset]
	return sum, ok
}

func verifyChecksum(data []byte, wantHex string) error {
	h := sha256.Sum256(data)
	if got := hex.EncodeToString(h[:]); got != strings.ToLower(wantHex) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// extractBinary pulls the file named exe out of a .tar.gz or .zip archive.
func extractBinary(archive []byte, asset, exe string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return fromZip(archive, exe)
	}
	return fromTarGz(archive, exe)
}

func fromTarGz(data []byte, exe string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", exe)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == exe {
			return readCapped(tr)
		}
	}
}

func fromZip(data []byte, exe string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != exe {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return readCapped(rc)
	}
	return nil, fmt.Errorf("binary %q not found in archive", exe)
}

func readCapped(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBinarySize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxBinarySize {
		return nil, fmt.Errorf("binary exceeds %d bytes", maxBinarySize)
	}
	return b, nil
}

// replaceExecutable writes bin next to target, checks the written bytes
// and renames it over target, keeping target's mode. The previous binary
// is moved aside first and restored if the final rename fails.
func replaceExecutable(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	written, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if !bytes.Equal(sha(written), sha(bin)) {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}

	backup := target + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("move current binary aside: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Rename(backup, target)
		return fmt.Errorf("rename: %w", err)
	}
	_ = os.Remove(backup)
	return nil
}

func sha(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}
