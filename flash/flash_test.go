package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ladle/flash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndPop(t *testing.T) {
	set := httptest.NewRecorder()
	flash.Set(set, "Recipe Successfully Added")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}

	pop := httptest.NewRecorder()
	assert.Equal(t, "Recipe Successfully Added", flash.Pop(pop, req))

	// Pop clears the cookie so the notice shows once
	cookies := pop.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	assert.Empty(t, flash.Pop(httptest.NewRecorder(), next))
}

func TestPopWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, flash.Pop(httptest.NewRecorder(), req))
}
