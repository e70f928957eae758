package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/service"
)

func TestStoreRecipeImagePassthrough(t *testing.T) {
	images := service.NewImageService(nil)

	url, err := images.StoreRecipeImage(context.Background(), "https://cdn.example.com/bread.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/bread.jpg", url)

	url, err = images.StoreRecipeImage(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestStoreRecipeImageRejectsBadPayloads(t *testing.T) {
	images := service.NewImageService(nil)
	ctx := context.Background()

	cases := map[string]string{
		"missing comma":    "data:image/png;base64",
		"not base64 flag":  "data:image/png,rawbytes",
		"invalid base64":   "data:image/png;base64,!!!not-base64!!!",
		"unsupported type": "data:application/pdf;base64,aGVsbG8=",
	}
	for name, payload := range cases {
		_, err := images.StoreRecipeImage(ctx, payload)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), name)
	}
}
