package lfucache

import (
	"github.com/Borislavv/go-lfu-cache/config"
	"github.com/Borislavv/go-lfu-cache/internal/cache"
)

var (
	// ErrRejected is returned by inserts the admission policy declined. Compare with errors.Is.
	ErrRejected = cache.ErrRejected

	ErrInvalidCapacity         = config.ErrInvalidCapacity
	ErrInvalidSampleSize       = config.ErrInvalidSampleSize
	ErrInvalidAdmissionControl = config.ErrInvalidAdmissionControl
)
