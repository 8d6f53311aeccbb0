package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const archiveFolder = "exam_qr_sheets"

// Archiver keeps generated QR sheets and result exports in Cloudinary.
type Archiver struct {
	cld *cloudinary.Cloudinary
}

func NewArchiver(cloudinaryURL string) (*Archiver, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Archiver{cld: cld}, nil
}

func (a *Archiver) Upload(ctx context.Context, data []byte, examID uuid.UUID, kind string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	params := uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s/%s_%s", kind, examID, uuid.New().String()),
		Folder:       archiveFolder,
		ResourceType: "raw",
	}
	res, err := a.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", kind, err)
	}
	return res.SecureURL, nil
}
