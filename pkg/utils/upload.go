package utils

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	MaxImageSize = 5 * 1024 * 1024  // 5MB
	MaxPDFSize   = 10 * 1024 * 1024 // 10MB
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadedFile is the parsed multipart file handed to the storage client
type UploadedFile struct {
	File        multipart.File
	Filename    string
	ContentType string
	Size        int64
}

func (f *UploadedFile) Close() error {
	if f.File == nil {
		return nil
	}
	return f.File.Close()
}

// ParseImageUpload extracts and validates an image file from a multipart form.
// Returns (nil, nil) when the field is absent so callers can treat the
// image as optional.
func ParseImageUpload(r *http.Request, field string) (*UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	if header.Size > MaxImageSize {
		file.Close()
		return nil, fmt.Errorf("file too large, maximum size is 5MB")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		file.Close()
		return nil, fmt.Errorf("only jpg, jpeg, png and webp images are allowed")
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		return nil, fmt.Errorf("only image files are allowed")
	}

	return &UploadedFile{
		File:        file,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}, nil
}

// ParsePDFUpload extracts and validates a PDF file from a multipart form.
// Unlike images the file is required.
func ParsePDFUpload(r *http.Request, field string) (*UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, fmt.Errorf("PDF file is required")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	if header.Size > MaxPDFSize {
		file.Close()
		return nil, fmt.Errorf("file too large, maximum size is 10MB")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" {
		file.Close()
		return nil, fmt.Errorf("only PDF files are allowed")
	}

	return &UploadedFile{
		File:        file,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}, nil
}
