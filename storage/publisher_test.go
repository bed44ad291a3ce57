package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	mu      sync.Mutex
	objects map[string]string
	fail    string
}

func (r *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Key)
	if key == r.fail {
		return nil, errors.New("boom")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.objects == nil {
		r.objects = map[string]string{}
	}
	r.objects[aws.ToString(in.Bucket)+"/"+key] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3PublisherPublish(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon.png"), []byte("icon"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "video.mp4"), []byte("video"), 0o644))

	putter := &recordingPutter{}
	publisher := NewS3Publisher(putter, "store", "applications")

	require.NoError(t, publisher.Publish(context.Background(), "app-1", dir, []string{"icon.png", "video.mp4"}))

	var keys []string
	for k := range putter.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{
		"store/applications/app-1/assets/icon.png",
		"store/applications/app-1/assets/video.mp4",
	}, keys)
	assert.Equal(t, "icon", putter.objects["store/applications/app-1/assets/icon.png"])
}

func TestS3PublisherPublishReportsFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon.png"), []byte("icon"), 0o644))

	putter := &recordingPutter{fail: "applications/app-1/assets/icon.png"}
	err := NewS3Publisher(putter, "store", "applications").Publish(context.Background(), "app-1", dir, []string{"icon.png"})
	assert.ErrorContains(t, err, "boom")
}

func TestS3PublisherMissingFile(t *testing.T) {
	err := NewS3Publisher(&recordingPutter{}, "store", "").Publish(context.Background(), "app-1", t.TempDir(), []string{"nope.png"})
	assert.Error(t, err)
}
