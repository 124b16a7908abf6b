// Package blob stores uploaded images for questions and answers.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"knowvalue.app/server/common"
)

var (
	ErrInvalidKey    = errors.New("invalid object key")
	ErrPathTraversal = errors.New("path traversal not allowed")
	ErrTooLarge      = errors.New("object exceeds maximum size")
)

// MaxObjectSize is the largest upload accepted by any store.
const MaxObjectSize = 10 << 20

// Object is a stored blob and the public URL it is served from.
type Object struct {
	Key string
	URL string
}

// Store persists blobs under a key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
}

// AnswerImageKey returns the object key for an answer attachment.
func AnswerImageKey(answerID int64, fileName string) (string, error) {
	return imageKey("answers", answerID, fileName)
}

// QuestionImageKey returns the object key for a question attachment.
func QuestionImageKey(questionID int64, fileName string) (string, error) {
	return imageKey("questions", questionID, fileName)
}

func imageKey(prefix string, ownerID int64, fileName string) (string, error) {
	name, err := common.SafeFileName(fileName, "image")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return fmt.Sprintf("%s/%d_%s", prefix, ownerID, name), nil
}
