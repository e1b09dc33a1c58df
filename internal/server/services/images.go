package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/logging"
	sc "github.com/dmitrijs2005/localswap/internal/server/config"
	"golang.org/x/crypto/blake2b"
)

const (
	// MaxImageSize is the largest accepted upload.
	MaxImageSize = 5 << 20
	// PlaceholderImageURL stands in for an upload that storage rejected.
	PlaceholderImageURL = "/images/placeholder.svg"
	imagePrefix         = "items/"
	imageCacheControl   = "max-age=3600"
	presignValidity     = 15 * time.Minute
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) error {
		_, err := c.DeleteObject(ctx, in)
		return err
	}
)

// PresignedUpload tells a browser where to PUT an image and where it will
// be served from afterwards.
type PresignedUpload struct {
	UploadURL string
	PublicURL string
	Key       string
	ExpiresAt time.Time
}

// ImageService stores item photos in S3-compatible object storage.
type ImageService struct {
	config   *sc.Config
	fallback bool
	log      logging.Logger
}

func NewImageService(config *sc.Config, log logging.Logger) *ImageService {
	return &ImageService{
		config:   config,
		fallback: config.DemoFallback,
		log:      log.With("module", "images"),
	}
}

func (s *ImageService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// ImageKey derives the storage key of an image from its content, so the
// same photo uploaded twice is stored once.
func ImageKey(data []byte, ext string) string {
	sum := blake2b.Sum256(data)
	return imagePrefix + hex.EncodeToString(sum[:16]) + ext
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// imageExt picks the file extension from the filename, falling back to the
// content type.
func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}
	if ext, ok := imageExtensions[contentType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// PublicURL returns where key is served from.
func (s *ImageService) PublicURL(key string) string {
	return s.config.PublicBaseURL() + "/" + key
}

// KeyFromURL maps a public image URL back to its storage key using the last
// path segment. It returns "" for URLs that cannot be ours.
func KeyFromURL(url string) string {
	if url == "" || url == PlaceholderImageURL {
		return ""
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return ""
	}
	return imagePrefix + name
}

func checkImage(contentType string, size int) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: content type %q", common.ErrUnsupportedImage, contentType)
	}
	if size > MaxImageSize {
		return common.NewValidationError("image", "Immagine troppo grande (max 5MB)")
	}
	if size == 0 {
		return common.NewValidationError("image", "Immagine vuota")
	}
	return nil
}

// Upload stores data and returns its public URL. When storage fails and demo
// fallback is on, the failure is logged and PlaceholderImageURL is returned.
func (s *ImageService) Upload(ctx context.Context, ownerID, filename, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if err := checkImage(contentType, len(data)); err != nil {
		return "", err
	}

	key := ImageKey(data, imageExt(filename, contentType))

	err := s.put(ctx, key, contentType, data)
	if err != nil {
		if s.fallback {
			s.log.Warn(ctx, "image upload failed, using placeholder", "owner", ownerID, "error", err)
			return PlaceholderImageURL, nil
		}
		return "", fmt.Errorf("error uploading image: %w", err)
	}

	s.log.Info(ctx, "image stored", "owner", ownerID, "key", key, "size", len(data))
	return s.PublicURL(key), nil
}

func (s *ImageService) put(ctx context.Context, key, contentType string, data []byte) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	return putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String(imageCacheControl),
	})
}

// PresignUpload returns a presigned PUT URL valid for 15 minutes for a new
// image named filename. The key is random because the content is not known yet.
func (s *ImageService) PresignUpload(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q", common.ErrUnsupportedImage, contentType)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	key := ImageKey([]byte(fmt.Sprintf("%s/%d", filename, time.Now().UnixNano())), imageExt(filename, contentType))

	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.config.S3Bucket),
		Key:          aws.String(key),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(imageCacheControl),
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		PublicURL: s.PublicURL(key),
		Key:       key,
		ExpiresAt: time.Now().Add(presignValidity),
	}, nil
}

// Delete removes the object behind url. Placeholder and foreign URLs are
// ignored.
func (s *ImageService) Delete(ctx context.Context, url string) error {
	key := KeyFromURL(url)
	if key == "" {
		return nil
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	if err := deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}
	return nil
}
