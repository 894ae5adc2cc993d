package filestorage

import (
	"errors"
	"strings"

	"github.com/SeakMengs/NameCert/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrNoEndpoint = errors.New("minio endpoint is not configured")

// NewMinioClient accepts MINIO_ENDPOINT as "host:port" or as a URL,
// an https:// scheme turns SSL on regardless of MINIO_USE_SSL.
func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	endpoint, secure := splitEndpoint(cfg.ENDPOINT)
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}

	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: secure || cfg.USE_SSL,
		Region: "us-east-1",
	})
}

func splitEndpoint(endpoint string) (string, bool) {
	endpoint = strings.TrimSpace(endpoint)

	secure := false
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
		secure = true
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
	}

	return strings.TrimSuffix(endpoint, "/"), secure
}
