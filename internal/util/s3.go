package util

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

func GetBatchDirectoryPath(batchId string) string {
	return fmt.Sprintf("certificates/%s", batchId)
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Add a prefix to the file name
	// For example, if the file name is "John Doe-Certificate-a1b2c3.pdf" and the prefix is "certificates/123",
	// the resulting name will be "certificates/123/John Doe-Certificate-a1b2c3.pdf"
	DirectoryPath string
	UniquePrefix  bool
	Bucket        string
	S3            *minio.Client
}

// uploads a file from a local path to S3
func UploadFileToS3ByPath(ctx context.Context, filePath string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(ctx, fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	fileName := PrepareObjectName(filepath.Base(filePath), fuo)

	contentType, err := detectContentType(filePath)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	info, err := fuo.S3.FPutObject(
		ctx,
		fuo.Bucket,
		fileName,
		filePath,
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// Generates the final object name with uniqueness and prefix.
// Object keys always use forward slashes.
func PrepareObjectName(originalName string, fuo *FileUploadOptions) string {
	fileName := originalName

	if fuo != nil {
		if fuo.UniquePrefix {
			fileName = AddUniquePrefixToFileName(originalName)
		}

		if fuo.DirectoryPath != "" {
			fileName = path.Join(fuo.DirectoryPath, fileName)
		}
	}

	return fileName
}

// Determines the content type of a file at the given path
func detectContentType(filePath string) (string, error) {
	// 1) Try extension-based lookup
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType != "" {
		return contentType, nil
	}

	// 2) Fall back to sniffing the first 512 bytes
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for content type detection: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type detection: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
