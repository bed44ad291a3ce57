package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

// Publisher copies stored asset files to a secondary location.
type Publisher interface {
	Publish(ctx context.Context, appID string, dir string, names []string) error
}

// NopPublisher discards every publish request.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, []string) error { return nil }

// ObjectPutter is the subset of the S3 client used by S3Publisher.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher mirrors asset files to {prefix}/{appID}/assets/{name} in a bucket.
type S3Publisher struct {
	client      ObjectPutter
	bucket      string
	prefix      string
	parallelism int
}

func NewS3Publisher(client ObjectPutter, bucket, prefix string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix, parallelism: 4}
}

// NewS3PublisherFromEnv builds a publisher using the default AWS credential chain.
func NewS3PublisherFromEnv(ctx context.Context, bucket, prefix string) (*S3Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Publisher(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Key returns the object key of an asset file.
func (p *S3Publisher) Key(appID, name string) string {
	return path.Join(p.prefix, appID, assetsDirName, name)
}

func (p *S3Publisher) Publish(ctx context.Context, appID string, dir string, names []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)

	for _, name := range names {
		name := name
		g.Go(func() error {
			return p.put(ctx, appID, filepath.Join(dir, name), name)
		})
	}
	return g.Wait()
}

func (p *S3Publisher) put(ctx context.Context, appID, filePath, name string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.Key(appID, name)),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
