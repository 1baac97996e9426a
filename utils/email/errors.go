package email

import "errors"

var ErrNotConfigured = errors.New("smtp host is not configured")
