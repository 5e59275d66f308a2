package services

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"metanoia_app_go/models"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

const (
	MaxImageUploadSize = 5 * 1024 * 1024  // 5MB
	MaxVideoUploadSize = 50 * 1024 * 1024 // 50MB
)

var (
	bannerImageTypes = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
		".gif":  "image/gif",
	}
	bannerVideoTypes = map[string]string{
		".mp4":  "video/mp4",
		".webm": "video/webm",
	}
)

// ValidateBannerUpload checks extension, size and content of a banner file
// and returns the banner type it should be stored as.
func ValidateBannerUpload(fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	bannerType := ""
	var expected string
	maxSize := int64(0)
	if ct, ok := bannerImageTypes[ext]; ok {
		bannerType, expected, maxSize = models.BannerTypeImage, ct, MaxImageUploadSize
	} else if ct, ok := bannerVideoTypes[ext]; ok {
		bannerType, expected, maxSize = models.BannerTypeVideo, ct, MaxVideoUploadSize
	} else {
		return "", NewValidationError("Formato de banner não suportado. Use JPG, PNG, WEBP, GIF, MP4 ou WEBM")
	}

	if fileHeader.Size > maxSize {
		return "", NewValidationError("O arquivo excede o tamanho máximo permitido")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", Internal(err, "ler arquivo")
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", Internal(err, "ler arquivo")
	}

	detected := http.DetectContentType(buffer[:n])
	if !contentMatches(detected, expected) {
		return "", NewValidationError("O conteúdo do arquivo não corresponde à extensão")
	}

	return bannerType, nil
}

// contentMatches compares sniffed and expected types. The sniffer does not
// know every container so only the major type is required to agree.
func contentMatches(detected, expected string) bool {
	if strings.HasPrefix(detected, expected) {
		return true
	}
	major := strings.SplitN(expected, "/", 2)[0]
	return strings.HasPrefix(detected, major+"/")
}

// UploadBanner validates and stores a banner, returning its public URL and type
func UploadBanner(ctx context.Context, storage StorageProvider, fileHeader *multipart.FileHeader) (string, string, error) {
	bannerType, err := ValidateBannerUpload(fileHeader)
	if err != nil {
		return "", "", err
	}

	if storage == nil || !storage.IsConfigured() {
		return "", "", Internal(errors.New("storage not configured"), "enviar banner")
	}

	result, err := storage.Upload(ctx, fileHeader, GenerateBannerKey(fileHeader.Filename))
	if err != nil {
		zlog.Error().Err(err).Str("file", fileHeader.Filename).Msg("Failed to upload banner")
		return "", "", Internal(err, "enviar banner")
	}

	return result.URL, bannerType, nil
}

// RemoveBanner deletes a banner this app stored. Failures are logged only,
// the page change that orphaned the file has already been saved.
func RemoveBanner(ctx context.Context, storage StorageProvider, bannerURL string) {
	key, ok := BannerKey(storage, bannerURL)
	if !ok {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("Failed to delete banner")
		return
	}
	zlog.Info().Str("key", key).Msg("Banner deleted")
}
