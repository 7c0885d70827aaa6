package repository

import (
	"bytes"
	"context"

	"github.com/rs/zerolog/log"

	"product-catalog/catalog"
	"product-catalog/models"
)

// FileDownloader downloads a stored file by ID
type FileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// DriveProductSource reads the product feed from a Google Drive file
type DriveProductSource struct {
	drive  FileDownloader
	fileID string
}

// NewDriveProductSource creates a new DriveProductSource
func NewDriveProductSource(drive FileDownloader, fileID string) *DriveProductSource {
	return &DriveProductSource{drive: drive, fileID: fileID}
}

// Ensure DriveProductSource implements catalog.ProductSource
var _ catalog.ProductSource = (*DriveProductSource)(nil)

// Describe returns the feed location
func (s *DriveProductSource) Describe() string {
	return "drive file " + s.fileID
}

// LoadProducts downloads and decodes the feed file
func (s *DriveProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	data, err := s.drive.DownloadFile(ctx, s.fileID)
	if err != nil {
		return nil, &catalog.FetchError{Source: s.Describe(), Err: err}
	}

	products, err := decodeProducts(bytes.NewReader(data))
	if err != nil {
		return nil, &catalog.FetchError{Source: s.Describe(), Err: err}
	}

	log.Ctx(ctx).Info().Str("fileId", s.fileID).Int("count", len(products)).Msg("LoadProducts: feed downloaded from Drive")
	return products, nil
}
