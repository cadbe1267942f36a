package ffmpeg

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ffmpegReleaseVersion = "6.1"
	ffmpegReleaseBaseURL = "https://github.com/ffbinaries/ffbinaries-prebuilt/releases/download"
)

// ffbinaries publishes ffmpeg and ffprobe as separate archives per platform
func assetForPlatform(goos, goarch string) (string, error) {
	var platform string
	switch {
	case goos == "linux" && goarch == "amd64":
		platform = "linux-64"
	case goos == "linux" && goarch == "arm64":
		platform = "linux-arm-64"
	case goos == "darwin" && goarch == "amd64":
		platform = "macos-64"
	case goos == "windows" && goarch == "amd64":
		platform = "win-64"
	default:
		return "", fmt.Errorf("%w: no bundled ffmpeg for %s/%s", ErrNotFound, goos, goarch)
	}
	return platform, nil
}

func assetURL(binary, platform string) string {
	return fmt.Sprintf(
		"%s/v%s/%s-%s-%s.zip",
		ffmpegReleaseBaseURL,
		ffmpegReleaseVersion,
		binary,
		ffmpegReleaseVersion,
		platform,
	)
}

func downloadAndExtract(platform, installDir string) error {
	client := &http.Client{Timeout: 5 * time.Minute}
	for _, binary := range []string{"ffmpeg", "ffprobe"} {
		if err := fetchArchive(client, assetURL(binary, platform), installDir); err != nil {
			return fmt.Errorf("download %s: %w", binary, err)
		}
	}
	return nil
}

func fetchArchive(client *http.Client, url, installDir string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmpFile, err := os.CreateTemp("", "vsplit-ffmpeg-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	archivePath := tmpFile.Name()
	defer func() { _ = os.Remove(archivePath) }()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return extractArchive(archivePath, installDir)
}

// copies any ffmpeg/ffprobe executables found in the archive into installDir
func extractArchive(archivePath, installDir string) error {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = zipReader.Close() }()

	found := 0
	for _, file := range zipReader.File {
		name := binaryName(filepath.Base(file.Name))
		if name == "" {
			continue
		}
		if err := extractZipFile(file, filepath.Join(installDir, name)); err != nil {
			return err
		}
		found++
	}

	if found == 0 {
		return fmt.Errorf("%w: archive has no ffmpeg or ffprobe binary", ErrNotFound)
	}
	return nil
}

func binaryName(base string) string {
	switch strings.ToLower(base) {
	case "ffmpeg", "ffmpeg.exe", "ffprobe", "ffprobe.exe":
		return strings.ToLower(base)
	default:
		return ""
	}
}

func extractZipFile(file *zip.File, dest string) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry: %w", err)
	}
	defer func() { _ = reader.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(dest), err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(dest), err)
	}
	return nil
}
