package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// ListBuckets returns all S3 buckets owned by the account
func (c *Client) ListBuckets() ([]pkgtypes.Bucket, error) {
	output, err := c.S3.ListBuckets(c.ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.API("ListBuckets", err)
	}

	var buckets []pkgtypes.Bucket
	for _, b := range output.Buckets {
		bucket := pkgtypes.Bucket{Name: deref(b.Name)}
		if b.CreationDate != nil {
			bucket.CreatedAt = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// ListObjects returns objects under a prefix plus the common prefixes
// ("directories") one level below it.
func (c *Client) ListObjects(bucket, prefix string) ([]string, []pkgtypes.Object, error) {
	paginator := s3.NewListObjectsV2Paginator(c.S3, &s3.ListObjectsV2Input{
		Bucket:    &bucket,
		Prefix:    &prefix,
		Delimiter: aws.String("/"),
	})

	var prefixes []string
	var objects []pkgtypes.Object

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, nil, errors.API("ListObjectsV2", err)
		}

		for _, p := range page.CommonPrefixes {
			prefixes = append(prefixes, deref(p.Prefix))
		}

		for _, o := range page.Contents {
			obj := pkgtypes.Object{Key: deref(o.Key)}
			if o.Size != nil {
				obj.Size = *o.Size
			}
			if o.LastModified != nil {
				obj.LastModified = *o.LastModified
			}
			objects = append(objects, obj)
		}
	}

	return prefixes, objects, nil
}
