// Package storage saves uploaded donation and report images.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// PublicPrefix is the URL path local uploads are served under
const PublicPrefix = "/uploads"

// Uploader stores one uploaded file and returns the URL it can be fetched from
type Uploader interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
}

// LocalUploader writes files into a directory served at PublicPrefix
type LocalUploader struct {
	Dir string
	now func() time.Time
}

// NewLocalUploader creates the upload directory if needed
func NewLocalUploader(dir string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &LocalUploader{Dir: dir, now: time.Now}, nil
}

// Save stores the file as <unix-ms>-<uuid><ext>
func (u *LocalUploader) Save(_ context.Context, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	name := strconv.FormatInt(u.now().UnixMilli(), 10) + "-" + uuid.NewString() +
		strings.ToLower(filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return PublicPrefix + "/" + name, nil
}

// CloudinaryUploader stores files in a Cloudinary folder
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an uploader for the given account
func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

// Save uploads the file and returns its secure URL
func (u *CloudinaryUploader) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return resp.SecureURL, nil
}
