package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	envFFmpegPath  = "VSPLIT_FFMPEG_PATH"
	envFFprobePath = "VSPLIT_FFPROBE_PATH"
	envNoDownload  = "VSPLIT_NO_DOWNLOAD"
)

var ErrNotFound = errors.New("ffmpeg binaries not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure locates ffmpeg and ffprobe once per process, in order: environment
// overrides, PATH, the user cache, and finally a downloaded release bundle.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = defaultLocator().locate()
	})
	return ensurePath, ensureErr
}

type locator struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
	cacheDir string
	download func(platform, installDir string) error
	goos     string
	goarch   string
}

func defaultLocator() locator {
	cacheDir, err := os.UserCacheDir()
	if err != nil || cacheDir == "" {
		cacheDir = os.TempDir()
	}
	return locator{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		cacheDir: cacheDir,
		download: downloadAndExtract,
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
	}
}

func (l locator) locate() (BinaryPaths, error) {
	paths := BinaryPaths{
		FFmpeg:  l.getenv(envFFmpegPath),
		FFprobe: l.getenv(envFFprobePath),
	}

	if paths.FFmpeg == "" {
		if found, err := l.lookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := l.lookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}
	if paths.FFmpeg != "" && paths.FFprobe != "" {
		return paths, nil
	}

	platform, err := assetForPlatform(l.goos, l.goarch)
	if err != nil {
		return l.partial(paths, err)
	}

	installDir := l.installDir()
	cached := BinaryPaths{
		FFmpeg:  filepath.Join(installDir, "ffmpeg"+executableSuffix(l.goos)),
		FFprobe: filepath.Join(installDir, "ffprobe"+executableSuffix(l.goos)),
	}

	if !binariesExist(cached) {
		if l.getenv(envNoDownload) != "" {
			return l.partial(paths, fmt.Errorf("%w: download disabled by %s", ErrNotFound, envNoDownload))
		}
		if err := os.MkdirAll(installDir, 0o755); err != nil {
			return BinaryPaths{}, fmt.Errorf("create ffmpeg cache dir: %w", err)
		}
		if err := l.download(platform, installDir); err != nil {
			return l.partial(paths, err)
		}
		if !binariesExist(cached) {
			return l.partial(paths, fmt.Errorf("%w: bundle extracted without binaries", ErrNotFound))
		}
		if err := makeExecutable(l.goos, cached); err != nil {
			return BinaryPaths{}, err
		}
	}

	if paths.FFmpeg == "" {
		paths.FFmpeg = cached.FFmpeg
	}
	if paths.FFprobe == "" {
		paths.FFprobe = cached.FFprobe
	}
	return paths, nil
}

// ffmpeg is required; a missing ffprobe only disables probing
func (l locator) partial(paths BinaryPaths, cause error) (BinaryPaths, error) {
	if paths.FFmpeg != "" {
		return paths, nil
	}
	return BinaryPaths{}, cause
}

func (l locator) installDir() string {
	return filepath.Join(
		l.cacheDir,
		"vsplit",
		"ffmpeg",
		ffmpegReleaseVersion,
		l.goos,
		l.goarch,
	)
}

func makeExecutable(goos string, paths BinaryPaths) error {
	if goos == "windows" {
		return nil
	}
	for _, path := range []string{paths.FFmpeg, paths.FFprobe} {
		if err := os.Chmod(path, 0o755); err != nil {
			return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func binariesExist(paths BinaryPaths) bool {
	return fileExists(paths.FFmpeg) && fileExists(paths.FFprobe)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}
