package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"knowvalue.app/server/internal/blob"
)

// MaxImages is the number of images accepted on a question or an answer.
const MaxImages = 5

// Upload is one image file received with a create request.
type Upload struct {
	FileName string
	Reader   io.Reader
}

type storedImage struct {
	Key       string
	URL       string
	SortOrder int32
}

// storeImages normalizes and stores uploads in order. Failed uploads are logged and skipped,
// so sort orders stay dense over the images that made it.
func storeImages(ctx context.Context, store blob.Store, uploads []Upload, keyFor func(fileName string) (string, error)) []storedImage {
	if store == nil || len(uploads) == 0 {
		return nil
	}

	stored := make([]storedImage, 0, len(uploads))
	for _, up := range uploads {
		img, err := blob.NormalizeImage(up.Reader, up.FileName)
		if err != nil {
			slog.WarnContext(ctx, "skipping image that could not be normalized",
				"error", err,
				"file_name", up.FileName)
			continue
		}

		key, err := keyFor(img.FileName)
		if err != nil {
			slog.WarnContext(ctx, "skipping image with unusable name",
				"error", err,
				"file_name", up.FileName)
			continue
		}

		obj, err := store.Put(ctx, key, bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType)
		if err != nil {
			slog.ErrorContext(ctx, "image upload failed",
				"error", err,
				"object_key", key)
			continue
		}

		stored = append(stored, storedImage{Key: obj.Key, URL: obj.URL, SortOrder: int32(len(stored))})
	}
	return stored
}
