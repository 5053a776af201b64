package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectStore holds snapshot and permission files.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store keeps objects in an S3-compatible bucket.
type S3Store struct {
	client S3API
	bucket string
}

// NewS3Store creates an S3 store. If endpoint is non-empty, path-style
// addressing is enabled (for MinIO and similar).
func NewS3Store(ctx context.Context, bucket, region, endpoint string) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return NewS3StoreWithClient(s3.NewFromConfig(cfg, s3opts...), bucket), nil
}

func NewS3StoreWithClient(client S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	contentType := "text/tab-separated-values"
	if strings.HasSuffix(key, ".jsonl") {
		contentType = "application/x-ndjson"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3 get object %s/%s: %w", s.bucket, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("s3 get object %s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read object %s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

// FileStore keeps objects under a local directory.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func (f *FileStore) Put(_ context.Context, key string, data []byte) error {
	p := f.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", key, ErrObjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Location is a parsed object location: s3://bucket/key or a local path.
type Location struct {
	Bucket string // empty for local paths
	Key    string
}

// ParseLocation splits an s3:// URI into bucket and key. Anything else is a
// local file path; its directory becomes the store root and its base name the
// key.
func ParseLocation(loc string) (Location, error) {
	if rest, ok := strings.CutPrefix(loc, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", loc)
		}
		return Location{Bucket: bucket, Key: key}, nil
	}
	if loc == "" {
		return Location{}, errors.New("empty snapshot location")
	}
	return Location{Key: loc}, nil
}

// IsS3 reports whether the location names an S3 object.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

// Open returns the store and key for loc. Local paths are served by a
// FileStore rooted at the path's directory.
func Open(ctx context.Context, loc, region, endpoint string) (ObjectStore, string, error) {
	l, err := ParseLocation(loc)
	if err != nil {
		return nil, "", err
	}
	if !l.IsS3() {
		return NewFileStore(filepath.Dir(l.Key)), filepath.Base(l.Key), nil
	}
	s, err := NewS3Store(ctx, l.Bucket, region, endpoint)
	if err != nil {
		return nil, "", err
	}
	return s, l.Key, nil
}

// OpenPrefix is like Open but treats loc as a directory-like prefix under
// which several keys are written.
func OpenPrefix(ctx context.Context, loc, region, endpoint string) (ObjectStore, string, error) {
	if !strings.HasPrefix(loc, "s3://") {
		if loc == "" {
			return nil, "", errors.New("empty location prefix")
		}
		return NewFileStore(loc), "", nil
	}
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(loc, "s3://"), "/")
	if bucket == "" {
		return nil, "", fmt.Errorf("invalid s3 prefix %q", loc)
	}
	s, err := NewS3Store(ctx, bucket, region, endpoint)
	if err != nil {
		return nil, "", err
	}
	return s, strings.TrimSuffix(prefix, "/"), nil
}

// JoinKey joins key segments with "/", skipping empty ones.
func JoinKey(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
