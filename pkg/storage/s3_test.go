package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjectAPI()
	st := NewS3(api, S3Options{
		Bucket:    "media",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000/",
		KeyPrefix: "/avatars/",
	})

	path, err := st.Save(ctx, "avatar-9.gif", []byte("gif"), "image/gif")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/media/avatars/avatar-9.gif", path)
	assert.Equal(t, []byte("gif"), api.objects["media/avatars/avatar-9.gif"])
	assert.Equal(t, "image/gif", api.types["media/avatars/avatar-9.gif"])

	assert.True(t, st.Owns(path))
	require.NoError(t, st.Delete(ctx, path))
	assert.Empty(t, api.objects)
}

func TestS3_PublicURLDefaults(t *testing.T) {
	st := NewS3(newFakeObjectAPI(), S3Options{Bucket: "b", Region: "eu-west-1"})

	path, err := st.Save(context.Background(), "x.png", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/x.png", path)

	custom := NewS3(newFakeObjectAPI(), S3Options{Bucket: "b", PublicURL: "https://cdn.example/", KeyPrefix: "avatars"})
	path, err = custom.Save(context.Background(), "x.png", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/avatars/x.png", path)
}

func TestS3_ForeignPaths(t *testing.T) {
	st := NewS3(newFakeObjectAPI(), S3Options{Bucket: "b", PublicURL: "https://cdn.example", KeyPrefix: "avatars"})

	assert.False(t, st.Owns("/defaults/default-avatar.png"))
	assert.False(t, st.Owns("https://cdn.example/other/x.png"))
	assert.False(t, st.Owns("https://cdn.example/avatars/"))
	assert.ErrorIs(t, st.Delete(context.Background(), "https://elsewhere/avatars/x.png"), ErrForeignPath)
}

func TestS3_PutError(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = errors.New("access denied")
	st := NewS3(api, S3Options{Bucket: "b", PublicURL: "https://cdn.example"})

	_, err := st.Save(context.Background(), "x.png", []byte("x"), "image/png")
	assert.ErrorContains(t, err, "access denied")
}
