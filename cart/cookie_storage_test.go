package cart

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benms/next-tailwind-amazona/models"
)

func TestCookieStorage_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Save on one request, carry the resulting cookie into the next.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/cart/items", nil)

	state := State{
		Items:         []Item{{Slug: "shirt", Name: "Shirt", Price: 10, Quantity: 2}},
		PaymentMethod: models.PaymentMethodStripe,
	}
	require.NoError(t, NewCookieStorage(c).Save(state))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, cookie := range cookies {
		c2.Request.AddCookie(cookie)
	}

	loaded, ok := NewCookieStorage(c2).Load()
	require.True(t, ok)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "shirt", loaded.Items[0].Slug)
	assert.Equal(t, models.PaymentMethodStripe, loaded.PaymentMethod)
}

func TestCookieStorage_AbsentCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)

	_, ok := NewCookieStorage(c).Load()
	assert.False(t, ok)
}

func TestCookieStorage_MalformedCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	c.Request.AddCookie(&http.Cookie{Name: StorageKey, Value: "%7Bnot-json"})

	_, ok := NewCookieStorage(c).Load()
	assert.False(t, ok)
}
