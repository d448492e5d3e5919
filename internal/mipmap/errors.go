package mipmap

import "errors"

var errNoMoreLevels = errors.New("mipmap: generator exhausted")
