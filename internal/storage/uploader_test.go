package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("images", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/api/uploads", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["images"][0]
}

func TestLocalUploaderSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	u, err := NewLocalUploader(dir)
	if err != nil {
		t.Fatalf("new uploader: %v", err)
	}
	u.now = func() time.Time { return time.UnixMilli(1700000000123) }

	url, err := u.Save(context.Background(), fileHeader(t, "Jacket.PNG", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/1700000000123-") || !strings.HasSuffix(url, ".png") {
		t.Errorf("unexpected url %q", url)
	}

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(stored) != "png-bytes" {
		t.Errorf("unexpected content %q", stored)
	}
}

func TestLocalUploaderNamesAreUnique(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := u.Save(context.Background(), fileHeader(t, "a.jpg", []byte("a")))
	b, _ := u.Save(context.Background(), fileHeader(t, "a.jpg", []byte("b")))
	if a == b {
		t.Errorf("two uploads got the same url %q", a)
	}
}
