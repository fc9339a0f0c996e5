package helpers

import (
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// ImagesBucket holds project screenshots, certification logos and timeline
// images; it is public so URLs can go straight into content rows.
const ImagesBucket = "portfolio-images"

// UploadImage stores a file by path in the images bucket and returns its
// public URL. The bucket is created lazily on first use.
func UploadImage(storage *storage_go.Client, path, contentType string, data io.Reader) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("upload path is required")
	}

	if _, err := storage.GetBucket(ImagesBucket); err != nil {
		_, createErr := storage.CreateBucket(ImagesBucket, storage_go.BucketOptions{
			Public: true,
		})
		if createErr != nil && !strings.Contains(createErr.Error(), "already exists") {
			return "", fmt.Errorf("failed to create bucket %s: %v", ImagesBucket, createErr)
		}
	}

	upsert := true
	_, err := storage.UploadFile(ImagesBucket, path, data, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %v", path, err)
	}

	res := storage.GetPublicUrl(ImagesBucket, path)
	return res.SignedURL, nil
}
