package s3

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// clientOptions points the client at a custom endpoint. S3-compatible stores
// such as R2 and MinIO need path-style addressing.
func clientOptions(endpoint string) []func(*awss3.Options) {
	if endpoint == "" {
		return nil
	}
	return []func(*awss3.Options){func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}}
}
