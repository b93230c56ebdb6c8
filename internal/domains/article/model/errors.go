package model

import (
	"errors"
	"net/http"
)

var ErrArticleNotFound = errors.New("article not found")

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	if errors.Is(err, ErrArticleNotFound) {
		return "ARTICLE_NOT_FOUND"
	}
	return "INTERNAL_ERROR"
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrArticleNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
