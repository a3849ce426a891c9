package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "/users", 0, 100},
		{"explicit", "/users?skip=20&limit=10", 20, 10},
		{"clamped limit", "/users?limit=5000", 0, 1000},
		{"negative skip ignored", "/users?skip=-5", 0, 100},
		{"zero limit ignored", "/users?limit=0", 0, 100},
		{"garbage ignored", "/users?skip=abc&limit=xyz", 0, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := ParsePageQuery(httptest.NewRequest("GET", tc.url, nil))
			assert.Equal(t, tc.wantSkip, q.Skip)
			assert.Equal(t, tc.wantLimit, q.Limit)
		})
	}
}
