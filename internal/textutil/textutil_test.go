package textutil

import (
	"bytes"
	"testing"
)

func TestNormalizeUTF8LF(t *testing.T) {
	in := []byte("project(Foo)\r\nadd_executable(foo\rmain.cpp)\xff\n")
	got := NormalizeUTF8LF(in)
	want := []byte("project(Foo)\nadd_executable(foo\nmain.cpp)�\n")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEnsureTrailingLF(t *testing.T) {
	if got := EnsureTrailingLF([]byte("x")); string(got) != "x\n" {
		t.Fatalf("got %q", got)
	}
	if got := EnsureTrailingLF([]byte("x\n")); string(got) != "x\n" {
		t.Fatalf("got %q", got)
	}
	if got := EnsureTrailingLF(nil); got != nil {
		t.Fatalf("got %q", got)
	}
}
