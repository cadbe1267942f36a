package ffmpeg

import (
	"archive/zip"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func fakeLocator(t *testing.T, env map[string]string, onPath map[string]string) locator {
	t.Helper()
	return locator{
		getenv: func(key string) string { return env[key] },
		lookPath: func(name string) (string, error) {
			if p, ok := onPath[name]; ok {
				return p, nil
			}
			return "", exec.ErrNotFound
		},
		cacheDir: t.TempDir(),
		download: func(platform, installDir string) error {
			t.Fatalf("unexpected download of %s", platform)
			return nil
		},
		goos:   "linux",
		goarch: "amd64",
	}
}

func TestLocateEnvironmentOverride(t *testing.T) {
	l := fakeLocator(t,
		map[string]string{
			envFFmpegPath:  "/opt/ffmpeg",
			envFFprobePath: "/opt/ffprobe",
		},
		map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"},
	)

	paths, err := l.locate()
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if paths.FFmpeg != "/opt/ffmpeg" || paths.FFprobe != "/opt/ffprobe" {
		t.Errorf("unexpected paths %+v", paths)
	}
}

func TestLocateFromPath(t *testing.T) {
	l := fakeLocator(t, nil,
		map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"},
	)

	paths, err := l.locate()
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if paths.FFmpeg != "/usr/bin/ffmpeg" || paths.FFprobe != "/usr/bin/ffprobe" {
		t.Errorf("unexpected paths %+v", paths)
	}
}

func TestLocateUsesCache(t *testing.T) {
	l := fakeLocator(t, nil, nil)

	dir := l.installDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("bin"), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := l.locate()
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if paths.FFmpeg != filepath.Join(dir, "ffmpeg") {
		t.Errorf("ffmpeg = %q, want cached binary", paths.FFmpeg)
	}
}

func TestLocateDownloadDisabled(t *testing.T) {
	l := fakeLocator(t, map[string]string{envNoDownload: "1"}, nil)

	_, err := l.locate()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLocateMissingProbeIsTolerated(t *testing.T) {
	l := fakeLocator(t,
		map[string]string{envNoDownload: "1"},
		map[string]string{"ffmpeg": "/usr/bin/ffmpeg"},
	)

	paths, err := l.locate()
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if paths.FFmpeg != "/usr/bin/ffmpeg" || paths.FFprobe != "" {
		t.Errorf("unexpected paths %+v", paths)
	}
}

func TestLocateDownloads(t *testing.T) {
	l := fakeLocator(t, nil, nil)

	var downloaded string
	l.download = func(platform, installDir string) error {
		downloaded = platform
		for _, name := range []string{"ffmpeg", "ffprobe"} {
			if err := os.WriteFile(filepath.Join(installDir, name), []byte("bin"), 0o644); err != nil {
				return err
			}
		}
		return nil
	}

	paths, err := l.locate()
	if err != nil {
		t.Fatalf("locate failed: %v", err)
	}
	if downloaded != "linux-64" {
		t.Errorf("downloaded platform = %q, want linux-64", downloaded)
	}
	info, err := os.Stat(paths.FFmpeg)
	if err != nil {
		t.Fatalf("stat ffmpeg: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("ffmpeg is not executable: %v", info.Mode())
	}
}

func TestAssetForPlatform(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"linux", "amd64", "linux-64", false},
		{"linux", "arm64", "linux-arm-64", false},
		{"darwin", "amd64", "macos-64", false},
		{"windows", "amd64", "win-64", false},
		{"plan9", "386", "", true},
	}

	for _, tt := range tests {
		got, err := assetForPlatform(tt.goos, tt.goarch)
		if (err != nil) != tt.wantErr {
			t.Errorf("assetForPlatform(%s, %s) error = %v, wantErr %v", tt.goos, tt.goarch, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("assetForPlatform(%s, %s) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
		}
	}
}

func TestAssetURL(t *testing.T) {
	want := ffmpegReleaseBaseURL + "/v6.1/ffprobe-6.1-linux-64.zip"
	if got := assetURL("ffprobe", "linux-64"); got != want {
		t.Errorf("assetURL = %q, want %q", got, want)
	}
}

func TestExtractArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.zip")

	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, name := range []string{"ffmpeg", "README.txt"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("content")); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	installDir := filepath.Join(dir, "install")
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := extractArchive(archivePath, installDir); err != nil {
		t.Fatalf("extractArchive failed: %v", err)
	}

	if !fileExists(filepath.Join(installDir, "ffmpeg")) {
		t.Error("ffmpeg was not extracted")
	}
	if fileExists(filepath.Join(installDir, "README.txt")) {
		t.Error("unexpected file extracted")
	}
}
