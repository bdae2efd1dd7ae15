package response_test

import (
	"net/http/httptest"
	"testing"

	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	t.Run("second page", func(t *testing.T) {
		page, meta := response.Paginate(newContext("/x?page=2&page_size=5"), items)
		assert.Equal(t, []int{6, 7, 8, 9, 10}, page)
		assert.Equal(t, response.PaginationMeta{Total: 12, TotalPages: 3, Page: 2, PageSize: 5}, meta)
	})

	t.Run("defaults", func(t *testing.T) {
		page, meta := response.Paginate(newContext("/x"), items)
		assert.Len(t, page, 10)
		assert.Equal(t, 2, meta.TotalPages)
		assert.Equal(t, 1, meta.Page)
	})

	t.Run("past the end is empty", func(t *testing.T) {
		page, meta := response.Paginate(newContext("/x?page=9&page_size=5"), items)
		assert.Empty(t, page)
		assert.Equal(t, int64(12), meta.Total)
	})
}
