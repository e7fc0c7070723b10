package service

import "errors"

// ErrUnknownModel is returned for a model-info request naming no known model.
var ErrUnknownModel = errors.New("unknown model")
