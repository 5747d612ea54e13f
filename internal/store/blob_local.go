package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
)

// LocalBlobStore keeps blobs in a directory on disk and hands out
// HMAC-signed download URLs served by the API itself.
type LocalBlobStore struct {
	dir     string
	baseURL string
	signKey string
	now     func() time.Time
	logger  *logger.Logger
}

// NewLocalBlobStore creates dir if needed. baseURL is the public prefix of
// the raw download route, e.g. "http://localhost:8080/files/raw".
func NewLocalBlobStore(dir, baseURL, signKey string, log *logger.Logger) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.Err(err).Str("func", "NewLocalBlobStore").Msg("error creating blob directory")
		return nil, fmt.Errorf("create blob dir: %w", err)
	}

	return &LocalBlobStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		signKey: signKey,
		now:     time.Now,
		logger:  log,
	}, nil
}

func (s *LocalBlobStore) Upload(ctx context.Context, key string, body io.Reader, _ int64, _ string) error {
	target := s.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), tempBlobPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, body); err != nil {
		tmp.Close()
		logger.FromContext(ctx).Err(err).Str("func", "*LocalBlobStore.Upload").Msg("error writing blob")
		return fmt.Errorf("write blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}

	return os.Rename(tmp.Name(), target)
}

// SignedURL returns "<baseURL>/<user>/<name>?exp=<unix>&sig=<hmac>".
func (s *LocalBlobStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	userID, name, ok := splitUserBlobKey(key)
	if !ok {
		return "", ErrInvalidBlobName
	}

	exp := strconv.FormatInt(s.now().Add(ttl).Unix(), 10)
	q := url.Values{}
	q.Set("exp", exp)
	q.Set("sig", utils.HashString(signaturePayload(key, exp), s.signKey))

	return fmt.Sprintf("%s/%d/%s?%s", s.baseURL, userID, url.PathEscape(name), q.Encode()), nil
}

func (s *LocalBlobStore) List(_ context.Context, prefix string) ([]BlobInfo, error) {
	entries, err := os.ReadDir(s.path(prefix))
	if errors.Is(err, fs.ErrNotExist) {
		return []BlobInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	blobs := make([]BlobInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempBlobPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		modified := info.ModTime().UTC()
		blobs = append(blobs, BlobInfo{
			Key:          prefix + entry.Name(),
			Size:         info.Size(),
			LastModified: &modified,
		})
	}
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].Key < blobs[j].Key })

	return blobs, nil
}

func (s *LocalBlobStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrBlobNotFound
	}
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// Open verifies the signature produced by [LocalBlobStore.SignedURL] and
// opens the blob for reading.
func (s *LocalBlobStore) Open(key, exp, sig string) (*os.File, error) {
	expUnix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil || s.now().Unix() > expUnix {
		return nil, ErrInvalidBlobSignature
	}
	if !utils.VerifyHashString(signaturePayload(key, exp), sig, s.signKey) {
		return nil, ErrInvalidBlobSignature
	}

	f, err := os.Open(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return f, err
}

func (s *LocalBlobStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

func signaturePayload(key, exp string) string {
	return key + "|" + exp
}
