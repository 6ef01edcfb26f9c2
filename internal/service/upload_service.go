package service

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// sniffLen is the prefix mimetype inspects by default.
const sniffLen = 3072

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// UploadedImage is the client view of a pinned file.
type UploadedImage struct {
	CID      string `json:"cid"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

type UploadService interface {
	Upload(ctx context.Context, name string, content io.Reader, groupID string) (*UploadedImage, error)
	Unpin(ctx context.Context, cid string) error
}

type uploadService struct {
	images ImageStore
	log    logrus.FieldLogger
}

// NewUploadService returns a service that rejects every call with
// ErrUploadsDisabled when images is nil.
func NewUploadService(images ImageStore, log logrus.FieldLogger) UploadService {
	return &uploadService{images: images, log: log.WithField("service", "upload")}
}

// Upload pins an image. The type is detected from the leading bytes; the
// client's Content-Type header is not trusted.
func (s *uploadService) Upload(ctx context.Context, name string, content io.Reader, groupID string) (*UploadedImage, error) {
	if s.images == nil {
		return nil, ErrUploadsDisabled
	}

	buffered := bufio.NewReaderSize(content, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, errors.Wrap(err, "read upload")
	}
	detected := mimetype.Detect(head)
	if !mimetype.EqualsAny(detected.String(), allowedImageTypes...) {
		s.log.WithFields(logrus.Fields{"name": name, "detected": detected.String()}).Warn("rejected upload")
		return nil, invalid("Invalid file type. Only JPEG, PNG, WebP and GIF images are allowed")
	}

	file, err := s.images.Upload(ctx, name, detected.String(), buffered, groupID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"cid": file.CID, "name": file.Name, "size": file.Size, "mime_type": detected.String()}).Info("image pinned")
	return &UploadedImage{CID: file.CID, Name: file.Name, URL: s.images.GatewayURL(file.CID), MimeType: detected.String()}, nil
}

func (s *uploadService) Unpin(ctx context.Context, cid string) error {
	if s.images == nil {
		return ErrUploadsDisabled
	}
	if strings.TrimSpace(cid) == "" {
		return invalid("CID is required")
	}
	return s.images.Unpin(ctx, cid)
}
