//go:build !linux

package worker

import "github.com/pkg/errors"

var errTitleUnsupported = errors.New("worker: process title unsupported on this platform")

func setTitle(string) error { return errTitleUnsupported }
