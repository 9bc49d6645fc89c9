// Package s3 implements an asset store on an S3-compatible bucket.
//
// Objects land under {prefix}/{object-path} using the canonical
// store.ObjectPath layout. URLs are either joined onto a public base URL
// (bucket behind a CDN) or presigned per request when no base is configured.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/unkn0wn-root/genasset/store"
)

// DefaultPresignTTL bounds presigned URLs when Config.PresignTTL is zero.
const DefaultPresignTTL = 15 * time.Minute

type Store struct {
	client  *awss3.Client
	presign *awss3.PresignClient
	bucket  string
	prefix  string
	baseURL string
	signTTL time.Duration
}

type Config struct {
	// Client is the configured S3 client. Required.
	Client *awss3.Client

	// Bucket holds the objects. Required.
	Bucket string

	// Prefix is prepended to every object key ("assets/prod").
	Prefix string

	// PublicBaseURL, when set, short-circuits presigning: URLs are
	// BaseURL + "/" + object path. Use it when the bucket sits behind a
	// CDN or is public.
	PublicBaseURL string

	// PresignTTL bounds presigned GET URLs. Defaults to DefaultPresignTTL.
	PresignTTL time.Duration
}

var _ store.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, errors.New("genasset/store: s3: client is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("genasset/store: s3: bucket is required")
	}
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	return &Store{
		client:  cfg.Client,
		presign: awss3.NewPresignClient(cfg.Client),
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: cfg.PublicBaseURL,
		signTTL: ttl,
	}, nil
}

func (s *Store) Put(ctx context.Context, filename string, content []byte) (store.Tuple, error) {
	t := store.Tuple{Filename: filename, Hash: store.ContentHash(content)}
	key, err := s.objectKey(t)
	if err != nil {
		return store.Tuple{}, err
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
		Metadata: map[string]string{
			"checksum":   t.Hash,
			"created-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return store.Tuple{}, fmt.Errorf("genasset/store: s3: put %q: %w", key, err)
	}
	return t, nil
}

func (s *Store) Exists(ctx context.Context, t store.Tuple) (bool, error) {
	key, err := s.objectKey(t)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("genasset/store: s3: head %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) URL(ctx context.Context, t store.Tuple) (string, error) {
	key, err := s.objectKey(t)
	if err != nil {
		return "", err
	}

	if s.baseURL != "" {
		u, err := url.Parse(s.baseURL)
		if err != nil {
			return "", fmt.Errorf("genasset/store: s3: base url %q: %w", s.baseURL, err)
		}
		u.Path = path.Join(u.Path, key)
		return u.String(), nil
	}

	req, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(s.signTTL))
	if err != nil {
		return "", fmt.Errorf("genasset/store: s3: presign %q: %w", key, err)
	}
	return req.URL, nil
}

func (s *Store) Get(ctx context.Context, t store.Tuple) ([]byte, error) {
	key, err := s.objectKey(t)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		return nil, fmt.Errorf("genasset/store: s3: get %q: %w", key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("genasset/store: s3: read %q: %w", key, err)
	}
	return b, nil
}

func (s *Store) objectKey(t store.Tuple) (string, error) {
	rel, err := store.ObjectPath(t)
	if err != nil {
		return "", err
	}
	return path.Join(s.prefix, rel), nil
}
