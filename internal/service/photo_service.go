package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"
	"fitcoach/coach-platform/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrPhotoNotFound is returned for photo operations on absent metadata.
var ErrPhotoNotFound = errors.New("progress photo not found")

// PhotoWithURL pairs photo metadata with a short-lived download URL.
type PhotoWithURL struct {
	Photo       domain.ProgressPhoto `json:"photo"`
	DownloadURL string               `json:"downloadUrl"`
}

// PhotoUploadTicket is what a client needs to upload one photo: the stored
// metadata and a presigned PUT URL the file goes to directly.
type PhotoUploadTicket struct {
	Photo     domain.ProgressPhoto `json:"photo"`
	UploadURL string               `json:"uploadUrl"`
}

// --- Service Interface ---
type PhotoService interface {
	RequestUpload(ctx context.Context, tenantID, clientID primitive.ObjectID, fileName, contentType string, takenAt *time.Time) (*PhotoUploadTicket, error)
	ListPhotos(ctx context.Context, tenantID, clientID primitive.ObjectID) ([]PhotoWithURL, error)
	DeletePhoto(ctx context.Context, tenantID, photoID primitive.ObjectID) error
}

// --- Service Implementation ---

// photoService implements the PhotoService interface.
type photoService struct {
	photoRepo   repository.PhotoRepository
	clientRepo  repository.ClientRepository
	fileStorage storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, clientRepo repository.ClientRepository, fileStorage storage.FileStorage) PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		clientRepo:  clientRepo,
		fileStorage: fileStorage,
	}
}

// RequestUpload stores photo metadata and returns a presigned PUT URL. The
// client must send the same Content-Type header when uploading.
func (s *photoService) RequestUpload(ctx context.Context, tenantID, clientID primitive.ObjectID, fileName, contentType string, takenAt *time.Time) (*PhotoUploadTicket, error) {
	if fileName == "" || contentType == "" {
		return nil, errors.New("file name and content type are required")
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TenantID != tenantID {
		return nil, ErrClientNotFound
	}

	objectKey := fmt.Sprintf("photos/%s/%s/%s", tenantID.Hex(), clientID.Hex(), uuid.NewString())
	photo := &domain.ProgressPhoto{
		ClientID:    clientID,
		TenantID:    tenantID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		TakenAt:     takenAt,
	}
	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	photo.ID = photoID

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &PhotoUploadTicket{Photo: *photo, UploadURL: uploadURL}, nil
}

// ListPhotos returns the client's photo metadata with presigned GET URLs,
// newest first. A URL that fails to sign is returned empty rather than
// failing the whole listing.
func (s *photoService) ListPhotos(ctx context.Context, tenantID, clientID primitive.ObjectID) ([]PhotoWithURL, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TenantID != tenantID {
		return nil, ErrClientNotFound
	}

	photos, err := s.photoRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoWithURL, 0, len(photos))
	for _, photo := range photos {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.S3ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			log.Printf("WARN: failed to presign download for photo %s: %v", photo.ID.Hex(), err)
			url = ""
		}
		result = append(result, PhotoWithURL{Photo: photo, DownloadURL: url})
	}
	return result, nil
}

// DeletePhoto removes the S3 object first, then the metadata, so a failure
// never leaves metadata pointing at a deleted object unnoticed.
func (s *photoService) DeletePhoto(ctx context.Context, tenantID, photoID primitive.ObjectID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	if photo.TenantID != tenantID {
		return ErrPhotoNotFound
	}

	if err := s.fileStorage.DeleteObject(ctx, photo.S3ObjectKey); err != nil {
		return err
	}
	if err := s.photoRepo.Delete(ctx, photoID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
