package cmfind

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("project(X)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	if _, err := Locate(dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	write(t, filepath.Join(dir, "CMakeLists.txt"))
	path, err := Locate(dir)
	if err != nil || filepath.Base(path) != "CMakeLists.txt" {
		t.Fatalf("path=%q err=%v", path, err)
	}
}

func TestListFilesDeterministicAndFiltered(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "CMakeLists.txt"))
	write(t, filepath.Join(dir, "src", "CMakeLists.txt"))
	write(t, filepath.Join(dir, "libraries", "zlib", "CMakeLists.txt"))
	write(t, filepath.Join(dir, "build", "CMakeLists.txt"))
	write(t, filepath.Join(dir, "cmake-build-debug", "CMakeLists.txt"))

	got, err := ListFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CMakeLists.txt", "libraries/zlib/CMakeLists.txt", "src/CMakeLists.txt"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
