package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/apperr"
)

// ImageService stores base64 data-URI recipe images in S3 and hands back
// public URLs. Payloads that are not data URIs pass through unchanged, so
// clients may also submit a URL directly.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// StoreRecipeImage uploads a data-URI payload under recipe-images/ and
// returns its URL.
func (s *ImageService) StoreRecipeImage(ctx context.Context, payload string) (string, error) {
	if !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}

	mediaType, data, err := decodeDataURI(payload)
	if err != nil {
		return "", err
	}

	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", apperr.Validation("unsupported image type %q", mediaType)
	}

	if s.s3Config == nil || s.s3Config.Client == nil {
		return "", apperr.Validation("image upload is not configured")
	}

	key := fmt.Sprintf("recipe-images/%s.%s", uuid.New().String(), ext)
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mediaType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

func decodeDataURI(payload string) (mediaType string, data []byte, err error) {
	rest := strings.TrimPrefix(payload, "data:")
	header, encoded, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, apperr.Validation("malformed image data")
	}

	mediaType = strings.TrimSuffix(header, ";base64")
	if mediaType == header {
		return "", nil, apperr.Validation("image data must be base64 encoded")
	}

	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, apperr.Validation("image data is not valid base64")
	}
	return mediaType, data, nil
}
