package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 10, 0, 10},
		{-1, 10, 0, 10},
		{2, 0, 10, DefaultPageSize},
		{2, 500, 10, DefaultPageSize},
	}
	for _, tc := range cases {
		offset, limit := CalculateOffsetLimit(tc.page, tc.size)
		if offset != tc.wantOffset || limit != tc.wantLimit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, offset, limit, tc.wantOffset, tc.wantLimit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Errorf("currentPage = %d, want 2", info.CurrentPage)
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Errorf("empty result totalPages = %d, want 1", empty.TotalPages)
	}

	clamped := NewPaginationInfo(5, 9, 10)
	if clamped.CurrentPage != 1 {
		t.Errorf("currentPage = %d past the end, want 1", clamped.CurrentPage)
	}
}

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	cases := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"page=2&size=25", 2, 25},
		{"", 1, 10},
		{"page=abc&size=xyz", 1, 10},
		{"page=-3&size=1000", 1, 10},
	}
	for _, tc := range cases {
		page, size := ParsePaginationParams(testContext(tc.query))
		if page != tc.wantPage || size != tc.wantSize {
			t.Errorf("ParsePaginationParams(%q) = (%d, %d), want (%d, %d)",
				tc.query, page, size, tc.wantPage, tc.wantSize)
		}
	}
}

func TestParseLimitParam(t *testing.T) {
	cases := []struct {
		query string
		def   int
		want  int
	}{
		{"limit=7", 10, 7},
		{"", 10, 10},
		{"limit=abc", 5, 5},
		{"limit=0", 5, 5},
		{"limit=9999", 5, 5},
	}
	for _, tc := range cases {
		if got := ParseLimitParam(testContext(tc.query), tc.def); got != tc.want {
			t.Errorf("ParseLimitParam(%q, %d) = %d, want %d", tc.query, tc.def, got, tc.want)
		}
	}
}
