package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DataImage is a decoded "data:<mime>;base64,<data>" payload.
type DataImage struct {
	ContentType string
	Ext         string
	Data        []byte
}

func DecodeDataURL(dataURL string) (*DataImage, error) {
	meta, data, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("invalid base64 image")
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else {
			ext = "." + strings.TrimPrefix(contentType, "image/")
		}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &DataImage{ContentType: contentType, Ext: ext, Data: raw}, nil
}

// S3Uploader stores images in a bucket and returns their public URL.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string // CloudFront or bucket URL, no trailing slash
}

func NewS3Uploader(ctx context.Context, region, bucket, baseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Uploader{client: s3.NewFromConfig(cfg), bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// UploadDataURL puts the image under folder/prefix-<nanos><ext>.
func (u *S3Uploader) UploadDataURL(ctx context.Context, dataURL, folder, prefix string) (string, error) {
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s-%d%s", folder, prefix, time.Now().UnixNano(), img.Ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return u.baseURL + "/" + key, nil
}
