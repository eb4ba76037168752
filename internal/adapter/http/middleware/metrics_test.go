package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/api/v1/accounts", "/api/v1/accounts"},
		{"/api/v1/accounts/", "/api/v1/accounts/"},
		{"/api/v1/accounts/01HX3", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/01HX3/history", "/api/v1/accounts/:id/history"},
		{"/api/v1/accounts/01HX3/verify", "/api/v1/accounts/:id/verify"},
		{"/api/v1/operations/01HX3", "/api/v1/operations/:id"},
		{"/api/v1/operations/01HX3/split", "/api/v1/operations/:id/split"},
		{"/api/v1/categories/01HX3", "/api/v1/categories/:id"},
		{"/api/v1/convert", "/api/v1/convert"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
