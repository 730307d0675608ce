package models

import "errors"

// ErrParse wraps every malformed numeric or date value met while building records.
var ErrParse = errors.New("parse error")
