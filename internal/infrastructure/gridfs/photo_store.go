package gridfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// PhotoStore keeps submitted survey photos in a GridFS bucket. The storage
// key doubles as the GridFS file id, so a second upload under the same key
// fails with a duplicate key error instead of overwriting the first.
type PhotoStore struct {
	bucket  *gridfs.Bucket
	baseURL string
}

// NewPhotoStore opens the named bucket on db. baseURL may be empty, in which
// case PublicURL fails and submissions proceed with a null photo URL.
func NewPhotoStore(db *mongo.Database, bucketName, baseURL string) (*PhotoStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket %s: %w", bucketName, err)
	}
	return &PhotoStore{bucket: bucket, baseURL: baseURL}, nil
}

// Upload stores data under key and returns the key.
func (s *PhotoStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return "", err
		}
	}

	uploadOptions := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if err := s.bucket.UploadFromStreamWithID(key, key, bytes.NewReader(data), uploadOptions); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("photo key %s already taken: %w", key, err)
		}
		return "", err
	}
	return key, nil
}

// PublicURL derives the browsable URL for a stored key without contacting
// the database.
func (s *PhotoStore) PublicURL(key string) (string, error) {
	if s.baseURL == "" {
		return "", errors.New("media base URL not configured")
	}
	return s.baseURL + "/" + key, nil
}

// Open streams a stored photo. The caller closes the reader.
func (s *PhotoStore) Open(ctx context.Context, key string) (application.PhotoObject, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return application.PhotoObject{}, err
		}
	}

	stream, err := s.bucket.OpenDownloadStream(key)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return application.PhotoObject{}, domain.ErrPhotoNotFound
		}
		return application.PhotoObject{}, err
	}

	file := stream.GetFile()
	return application.PhotoObject{
		ContentType: metadataContentType(file.Metadata),
		Length:      file.Length,
		Reader:      stream,
	}, nil
}

// metadataContentType reads the content type recorded at upload time. Files
// inserted by other tooling may lack it; callers pick their own fallback.
func metadataContentType(metadata bson.Raw) string {
	if len(metadata) == 0 {
		return ""
	}
	var meta struct {
		ContentType string `bson:"contentType"`
	}
	if err := bson.Unmarshal(metadata, &meta); err != nil {
		return ""
	}
	return meta.ContentType
}
