package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// wellKnownPaths are absolute locations checked before falling back to PATH.
var wellKnownPaths = []string{
	"/usr/bin/ffmpeg",
	"/usr/local/bin/ffmpeg",
	"/opt/homebrew/bin/ffmpeg",
}

// resolveBinary locates ffmpeg by trying, in order: an explicit config
// override, well-known absolute paths, the executable search path, and a
// binary co-located with this application. First match wins; only after all
// strategies are exhausted does it fail.
func (n *implNormalizer) resolveBinary() (string, error) {
	return discover(n.cfg.FFmpeg.BinaryPath, wellKnownPaths, exec.LookPath, os.Executable)
}

func discover(configured string, known []string, lookPath func(string) (string, error), executable func() (string, error)) (string, error) {
	if configured != "" {
		if fileExists(configured) {
			return configured, nil
		}
		return "", fmt.Errorf("configured ffmpeg path %s does not exist: %w", configured, ErrToolUnavailable)
	}

	for _, p := range known {
		if fileExists(p) {
			return p, nil
		}
	}

	if p, err := lookPath(binaryName()); err == nil {
		return p, nil
	}

	if self, err := executable(); err == nil {
		colocated := filepath.Join(filepath.Dir(self), binaryName())
		if fileExists(colocated) {
			return colocated, nil
		}
	}

	return "", ErrToolUnavailable
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
