package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["photo"][0]
}

func TestSaveUpload(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	name, err := store.SaveUpload(uploadHeader(t, "Mugshot.JPG", "fake image bytes"))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("stored name = %q, want lowercased original extension", name)
	}
	if name == "Mugshot.JPG" {
		t.Error("stored name must not be the client filename")
	}

	f, err := store.Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveUpload_UniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a, err := store.SaveUpload(uploadHeader(t, "same.png", "one"))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	b, err := store.SaveUpload(uploadHeader(t, "same.png", "two"))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if a == b {
		t.Errorf("two uploads stored under the same name %q", a)
	}
}

func TestOpen_StripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	secret := filepath.Join(dir, "secret.txt")
	if err := os.WriteFile(secret, []byte("outside"), 0o644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	if _, err := store.Open("../secret.txt"); err == nil {
		t.Error("Open escaped the storage root")
	}
}

func TestRemove(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	name, err := store.SaveUpload(uploadHeader(t, "a.png", "x"))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := store.Open(name); err == nil {
		t.Error("file still readable after Remove")
	}

	// already-gone files and empty names are fine
	if err := store.Remove(name); err != nil {
		t.Errorf("Remove(missing) error = %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Errorf("Remove(\"\") error = %v", err)
	}
}
