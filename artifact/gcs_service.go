// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
	"github.com/zshehov/adk-python-sub001/types/py"
)

// GCSService is a [types.ArtifactService] storing artifacts in a Google Cloud Storage bucket.
//
// Every version is one object named {artifact path}/{version}.
type GCSService struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

var _ types.ArtifactService = (*GCSService)(nil)

// NewGCSService creates a new [GCSService] for bucketName using the default credentials.
func NewGCSService(ctx context.Context, bucketName string, opts ...option.ClientOption) (*GCSService, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{
			storage.ScopeFullControl,
			storage.ScopeReadWrite,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get credentials for storage: %w", err)
	}

	opts = append([]option.ClientOption{option.WithAuthCredentials(creds)}, opts...)
	client, err := storage.NewGRPCClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return NewGCSServiceFromClient(client, bucketName), nil
}

// NewGCSServiceFromClient creates a new [GCSService] using an existing storage client.
//
// The service takes ownership of client and closes it in [GCSService.Close].
func NewGCSServiceFromClient(client *storage.Client, bucketName string) *GCSService {
	return &GCSService{
		client: client,
		bucket: client.Bucket(bucketName),
	}
}

func blobName(appName, userID, sessionID, filename string, version int) string {
	return artifactPath(appName, userID, sessionID, filename) + "/" + strconv.Itoa(version)
}

// SaveArtifact implements [types.ArtifactService].
func (a *GCSService) SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error) {
	versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
	if err != nil {
		return 0, err
	}
	version := 0
	if len(versions) > 0 {
		version = slices.Max(versions) + 1
	}

	var (
		data     []byte
		mimeType string
	)
	switch {
	case artifact.InlineData != nil:
		data, mimeType = artifact.InlineData.Data, artifact.InlineData.MIMEType
	case artifact.Text != "":
		data, mimeType = []byte(artifact.Text), "text/plain"
	default:
		return 0, errors.New("artifact must have inline data or text")
	}

	// cancelling the writer context aborts the upload
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := a.bucket.Object(blobName(appName, userID, sessionID, filename, version)).NewWriter(wctx)
	w.ContentType = mimeType
	if _, err := w.Write(data); err != nil {
		cancel()
		return 0, fmt.Errorf("write artifact %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("write artifact %s: %w", filename, err)
	}

	return version, nil
}

// LoadArtifact implements [types.ArtifactService].
func (a *GCSService) LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error) {
	if version < 0 {
		versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, nil
		}
		version = slices.Max(versions)
	}

	r, err := a.bucket.Object(blobName(appName, userID, sessionID, filename, version)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artifact %s: %w", filename, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", filename, err)
	}

	return genai.NewPartFromBytes(data, r.Attrs.ContentType), nil
}

// ListArtifactKey implements [types.ArtifactService].
func (a *GCSService) ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error) {
	eg, ctx := errgroup.WithContext(ctx)

	sessionFilenames := py.NewSet[string]()
	eg.Go(func() error {
		return a.listFilenames(ctx, sessionPrefix(appName, userID, sessionID), sessionFilenames)
	})
	userFilenames := py.NewSet[string]()
	eg.Go(func() error {
		return a.listFilenames(ctx, userPrefix(appName, userID), userFilenames)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return py.List(sessionFilenames.Union(userFilenames)), nil
}

// listFilenames adds the filename of every object under prefix to filenames.
func (a *GCSService) listFilenames(ctx context.Context, prefix string, filenames py.Set[string]) error {
	it := a.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("list artifacts: %w", err)
		}
		if filename, _, ok := splitBlobName(strings.TrimPrefix(attrs.Name, prefix)); ok {
			filenames.Insert(filename)
		}
	}
}

// splitBlobName splits "{filename}/{version}".
func splitBlobName(name string) (filename string, version int, ok bool) {
	idx := strings.LastIndex(name, "/")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return name[:idx], version, true
}

// DeleteArtifact implements [types.ArtifactService].
func (a *GCSService) DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error {
	versions, err := a.ListVersions(ctx, appName, userID, sessionID, filename)
	if err != nil {
		return err
	}

	for _, version := range versions {
		err := a.bucket.Object(blobName(appName, userID, sessionID, filename, version)).Delete(ctx)
		if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("delete artifact %s version %d: %w", filename, version, err)
		}
	}

	return nil
}

// ListVersions implements [types.ArtifactService].
func (a *GCSService) ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error) {
	prefix := artifactPath(appName, userID, sessionID, filename) + "/"
	it := a.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var versions []int
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list artifact versions: %w", err)
		}
		version, err := strconv.Atoi(strings.TrimPrefix(attrs.Name, prefix))
		if err != nil {
			continue
		}
		versions = append(versions, version)
	}
	slices.Sort(versions)

	return versions, nil
}

// Close implements [types.ArtifactService].
func (a *GCSService) Close() error {
	return a.client.Close()
}
