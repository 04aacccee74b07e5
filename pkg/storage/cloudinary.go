package storage

import (
	"context"
	"fmt"
	"io"

	"bootcamp-platform/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StoredFile is the provider reference for an uploaded blob
type StoredFile struct {
	URL      string
	PublicID string
}

// FileStorage abstracts the blob provider so usecases stay testable
type FileStorage interface {
	UploadImage(ctx context.Context, file io.Reader) (*StoredFile, error)
	UploadPDF(ctx context.Context, file io.Reader, publicID string) (*StoredFile, error)
	Destroy(ctx context.Context, publicID string) error
	DestroyRaw(ctx context.Context, publicID string) error
}

type cloudinaryStorage struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(config utils.StorageConfig) (FileStorage, error) {
	client, err := cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	folder := config.Folder
	if folder == "" {
		folder = "bootcamp"
	}

	return &cloudinaryStorage{
		client: client,
		folder: folder,
	}, nil
}

// UploadImage stores a cover image, normalized to 800x600
func (s *cloudinaryStorage) UploadImage(ctx context.Context, file io.Reader) (*StoredFile, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         s.folder,
		Transformation: "w_800,h_600,c_fill,q_auto:good",
	})
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	return &StoredFile{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

// UploadPDF stores a project document as a raw asset
func (s *cloudinaryStorage) UploadPDF(ctx context.Context, file io.Reader, publicID string) (*StoredFile, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder + "/projects",
		PublicID:     publicID,
		ResourceType: "raw",
		Format:       "pdf",
	})
	if err != nil {
		return nil, fmt.Errorf("upload pdf: %w", err)
	}

	return &StoredFile{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

// Destroy removes an image asset. Callers treat failures as best-effort.
func (s *cloudinaryStorage) Destroy(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	return err
}

// DestroyRaw removes a raw (PDF) asset
func (s *cloudinaryStorage) DestroyRaw(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	return err
}
