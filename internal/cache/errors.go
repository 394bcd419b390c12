package cache

import "errors"

// ErrRejected is returned by inserts the admission policy declined. The store is left unchanged.
var ErrRejected = errors.New("item rejected by admission policy")
