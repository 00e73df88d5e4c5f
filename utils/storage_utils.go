package utils

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3-compatible object storage for property photos. Connection settings come
// from the environment so deployments can point at any S3 endpoint.
var (
	accessKey = os.Getenv("S3_ACCESS_KEY")
	secretKey = os.Getenv("S3_SECRET_KEY")
	bucket    = os.Getenv("S3_BUCKET")
	region    = os.Getenv("S3_REGION")
	endpoint  = os.Getenv("S3_ENDPOINT")
)

func getS3Client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey, secretKey, "",
		),
	}))
	return s3.New(sess)
}

// UploadFileToS3 stores a photo under folder/fileName and returns its public URL.
func UploadFileToS3(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	s3Client := getS3Client()

	_, err := s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String("image/jpeg"),
		ACL:           aws.String("public-read"),
	})

	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", bucket, endpointHost(), filePath), nil
}

func endpointHost() string {
	host := endpoint
	for _, prefix := range []string{"https://", "http://"} {
		if len(host) > len(prefix) && host[:len(prefix)] == prefix {
			host = host[len(prefix):]
		}
	}
	return host
}
