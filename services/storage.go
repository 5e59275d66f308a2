package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"metanoia_app_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// StorageProvider stores landing page media
type StorageProvider interface {
	Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error)
	UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
	IsConfigured() bool
}

// StorageResult contains information about the stored file
type StorageResult struct {
	Key      string // Storage key/path
	FileName string
	FileSize int64
	MimeType string
	URL      string // Public URL
}

// Storage is the global storage instance
var Storage StorageProvider

// InitializeStorage uses Cloudflare R2 when fully configured and reachable,
// otherwise the local upload directory.
func InitializeStorage(cfg *config.Config) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		Storage = NewLocalStorage(cfg.UploadDir)
		zlog.Info().Str("path", cfg.UploadDir).Msg("Storage ready (local filesystem)")
		return
	}

	r2, err := NewR2Storage(cfg)
	if err != nil {
		zlog.Warn().Err(err).Msg("Failed to initialize R2 storage, falling back to local storage")
		Storage = NewLocalStorage(cfg.UploadDir)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = r2.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &cfg.R2BucketName}); err != nil {
		zlog.Warn().Err(err).Msg("R2 bucket connection test failed, falling back to local storage")
		Storage = NewLocalStorage(cfg.UploadDir)
		return
	}

	Storage = r2
	zlog.Info().Str("bucket", cfg.R2BucketName).Msg("Storage ready (Cloudflare R2)")
}

// R2Storage implements StorageProvider for Cloudflare R2
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Storage creates a new R2 storage provider
func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	// R2 endpoint format: https://<account_id>.r2.cloudflarestorage.com
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	creds := credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"), // R2 uses "auto" region
	)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:    client,
		bucket:    cfg.R2BucketName,
		publicURL: cfg.R2PublicURL,
	}, nil
}

// IsConfigured returns true if R2 is properly configured
func (r *R2Storage) IsConfigured() bool {
	return r.client != nil && r.bucket != ""
}

// Upload uploads a multipart file to R2
func (r *R2Storage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer src.Close()

	return r.UploadReader(ctx, src, key, contentTypeOf(file), file.Size)
}

// UploadReader uploads content from a reader to R2
func (r *R2Storage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, errors.Wrap(err, "upload to R2")
	}

	return &StorageResult{
		Key:      key,
		FileName: path.Base(key),
		FileSize: size,
		MimeType: contentType,
		URL:      r.GetPublicURL(key),
	}, nil
}

// Delete removes a file from R2
func (r *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrap(err, "delete from R2")
}

// GetPublicURL returns the public URL for a key, empty without R2_PUBLIC_URL
func (r *R2Storage) GetPublicURL(key string) string {
	if r.publicURL == "" {
		return ""
	}
	return strings.TrimSuffix(r.publicURL, "/") + "/" + key
}

// LocalStorage implements StorageProvider for the local filesystem
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a new local storage provider
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// IsConfigured returns true (local storage is always available)
func (l *LocalStorage) IsConfigured() bool {
	return true
}

// Upload saves a multipart file to the local filesystem
func (l *LocalStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer src.Close()

	return l.UploadReader(ctx, src, key, contentTypeOf(file), file.Size)
}

// UploadReader saves content from a reader to the local filesystem
func (l *LocalStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, errors.Wrap(err, "create directory")
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, errors.Wrap(err, "create file")
	}
	defer dst.Close()

	written, err := io.Copy(dst, reader)
	if err != nil {
		os.Remove(fullPath)
		return nil, errors.Wrap(err, "save file")
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: written,
		MimeType: contentType,
		URL:      l.GetPublicURL(key),
	}, nil
}

// Delete removes a file from the local filesystem
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete file")
	}
	return nil
}

// GetPublicURL returns the path the static file server exposes key under
func (l *LocalStorage) GetPublicURL(key string) string {
	return "/" + filepath.ToSlash(filepath.Join(l.baseDir, key))
}

// resolve maps key inside baseDir, rejecting path traversal
func (l *LocalStorage) resolve(key string) (string, error) {
	absBase, err := filepath.Abs(l.baseDir)
	if err != nil {
		return "", errors.Wrap(err, "resolve upload directory")
	}
	absPath, err := filepath.Abs(filepath.Join(l.baseDir, key))
	if err != nil {
		return "", errors.Wrap(err, "resolve file path")
	}
	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", errors.New("invalid file path: path traversal detected")
	}
	return absPath, nil
}

func contentTypeOf(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// GenerateStorageKey creates a unique storage key under prefix
func GenerateStorageKey(prefix string, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s/%s_%d%s", strings.Trim(prefix, "/"), uuid.New().String(), time.Now().Unix(), ext)
}

const bannerKeyPrefix = "landing-pages/banners"

// GenerateBannerKey creates a storage key for landing page banners
func GenerateBannerKey(originalFilename string) string {
	return GenerateStorageKey(bannerKeyPrefix, originalFilename)
}

// BannerKey maps a banner URL back to its storage key. External URLs (video
// links, images hosted elsewhere) report false.
func BannerKey(storage StorageProvider, bannerURL string) (string, bool) {
	if storage == nil || bannerURL == "" {
		return "", false
	}
	base := strings.TrimSuffix(storage.GetPublicURL(bannerKeyPrefix), "/")
	if base == "" || !strings.HasPrefix(bannerURL, base+"/") {
		return "", false
	}
	name := strings.TrimPrefix(bannerURL, base+"/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", false
	}
	return bannerKeyPrefix + "/" + name, true
}
