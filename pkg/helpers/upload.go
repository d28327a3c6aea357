package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedImage = errors.New("seules les images sont autorisées (jpg, jpeg, png, gif, webp)")

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageUpload is a validated in-memory image ready to be stored.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u *ImageUpload) Reader() io.Reader { return bytes.NewReader(u.Data) }

// ReadImage reads a multipart file, enforces maxSize and sniffs the content
// type from the bytes rather than trusting the client header.
func ReadImage(fh *multipart.FileHeader, maxSize int64) (*ImageUpload, error) {
	if maxSize > 0 && fh.Size > maxSize {
		return nil, fmt.Errorf("fichier trop volumineux (max %d octets)", maxSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	limit := maxSize
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fichier trop volumineux (max %d octets)", limit)
	}
	return SniffImage(fh.Filename, data)
}

// SniffImage validates that data is one of the accepted image formats.
func SniffImage(filename string, data []byte) (*ImageUpload, error) {
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return nil, ErrUnsupportedImage
	}
	return &ImageUpload{Filename: filename, ContentType: mt.String(), Data: data}, nil
}
