package main

import (
	"errors"
)

var (
	ERR_INVALID_CONFIG      error = errors.New("Invalid config")
	ERR_MISMATCH            error = errors.New("Container disagrees with model")
	ERR_VALIDATION          error = errors.New("Container failed validation")
	ERR_INTERRUPTED_BY_USER error = errors.New("Interrupted by user")
)
