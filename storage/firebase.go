package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Credentials holds the service-account fields needed to reach the Firebase
// Storage bucket.
type Credentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
	Bucket      string
}

// Bucket wraps the Firebase Storage bucket used for product and bouquet
// images.
type Bucket struct {
	handle *gcs.BucketHandle
	name   string
}

// NewBucket initializes the Firebase app and returns a handle on its default
// storage bucket.
func NewBucket(ctx context.Context, creds Credentials) (*Bucket, error) {
	if creds.ProjectID == "" || creds.ClientEmail == "" || creds.PrivateKey == "" || creds.Bucket == "" {
		return nil, errors.New("incomplete firebase credentials")
	}

	// Hosting platforms store newlines in env vars as literal "\n".
	privateKey := strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")

	sa, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   creds.ProjectID,
		"client_email": creds.ClientEmail,
		"private_key":  privateKey,
	})
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: creds.Bucket},
		option.WithCredentialsJSON(sa))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing storage client: %w", err)
	}
	handle, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("opening default bucket: %w", err)
	}
	return &Bucket{handle: handle, name: creds.Bucket}, nil
}

// UploadPublic writes the object, makes it publicly readable, and returns its
// public download URL.
func (b *Bucket) UploadPublic(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	obj := b.handle.Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finishing upload: %w", err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("making object public: %w", err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		b.name, url.PathEscape(objectName)), nil
}

var objectPathRe = regexp.MustCompile(`/o/(.+)\?alt=media`)

// DeleteByURL removes the object behind a public download URL. A URL that
// does not point into the bucket, or an already-deleted object, is not an
// error.
func (b *Bucket) DeleteByURL(ctx context.Context, publicURL string) error {
	decoded, err := url.QueryUnescape(publicURL)
	if err != nil {
		decoded = publicURL
	}
	match := objectPathRe.FindStringSubmatch(decoded)
	if match == nil {
		return nil
	}

	err = b.handle.Object(match[1]).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
