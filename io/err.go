package io

import (
	"errors"

	"github.com/ezrec/lisa/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))
	ErrChannelRead   = errors.New(f("channel read failed"))

	// Loader errors
	ErrFileNotFound   = errors.New(f("file not found"))
	ErrFileUnreadable = errors.New(f("file unreadable"))
)

// ErrFile names the file a loader failed on.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
