package params

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctx(target string, p gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = p
	return c
}

func TestID(t *testing.T) {
	id, err := ID(ctx("/", gin.Params{{Key: "id", Value: "42"}}), "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, v := range []string{"", "0", "-1", "abc"} {
		_, err := ID(ctx("/", gin.Params{{Key: "id", Value: v}}), "id")
		assert.Error(t, err, v)
	}
}

func TestPage(t *testing.T) {
	l, o := Page(ctx("/?limit=20&offset=5", nil))
	assert.Equal(t, 20, l)
	assert.Equal(t, 5, o)

	l, o = Page(ctx("/?limit=10&page=3", nil))
	assert.Equal(t, 10, l)
	assert.Equal(t, 20, o)

	l, o = Page(ctx("/", nil))
	assert.Zero(t, l)
	assert.Zero(t, o)
}

func TestBool(t *testing.T) {
	assert.Nil(t, Bool(ctx("/", nil), "active"))
	b := Bool(ctx("/?active=false", nil), "active")
	require.NotNil(t, b)
	assert.False(t, *b)
}
