package storage

import (
	"io"
	"log"
	"path"

	"github.com/minio/minio-go/v6"
	"github.com/pkg/errors"
)

// Artifacts in an S3 bucket, object names are prefixed
type Minio struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

func NewMinio(bucket string, prefix string, endpoint string, accessKeyID string, secretAccessKey string, secure bool) (*Minio, error) {
	minioClient, err := minio.New(endpoint, accessKeyID, secretAccessKey, secure)
	if err != nil {
		return nil, errors.Wrap(err, "init minio client")
	}

	err = minioClient.MakeBucket(bucket, "us-east-1")
	if err != nil {
		// Check to see if we already own this bucket (which happens if you run this twice)
		exists, errBucketExists := minioClient.BucketExists(bucket)
		if errBucketExists != nil || !exists {
			return nil, errors.Wrapf(err, "make bucket %s", bucket)
		}
		log.Printf("We already own %s\n", bucket)
	} else {
		log.Printf("Successfully created %s\n", bucket)
	}

	return &Minio{
		client:     minioClient,
		bucketName: bucket,
		prefix:     prefix,
	}, nil
}

func objectName(prefix string, fileName string) string {
	return path.Join(prefix, path.Base(fileName))
}

// Only the base name of fileName is kept
func (m *Minio) Put(fileName string, content io.Reader, fileSize int64) (written int64, err error) {
	return m.client.PutObject(m.bucketName, objectName(m.prefix, fileName), content, fileSize,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
}

func (m *Minio) Delete(fileName string) error {
	return m.client.RemoveObject(m.bucketName, objectName(m.prefix, fileName))
}
