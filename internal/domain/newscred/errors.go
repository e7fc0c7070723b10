package newscred

import "errors"

// ErrEmptyArticle is returned when the title or text is blank after cleaning.
var ErrEmptyArticle = errors.New("article title and text must not be empty")
