package cartControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/benms/next-tailwind-amazona/cart"
)

const cartIDCookie = "cart_id"

// StorageFactory builds the cart storage slot for one request.
type StorageFactory func(c *gin.Context) cart.Storage

// CookieFactory keeps the whole cart document in a request cookie, the
// default deployment.
func CookieFactory() StorageFactory {
	return func(c *gin.Context) cart.Storage {
		return cart.NewCookieStorage(c)
	}
}

// RedisFactory keeps carts server-side in redis, keyed by a stable
// cart_id cookie minted on first contact.
func RedisFactory(client *redis.Client) StorageFactory {
	return func(c *gin.Context) cart.Storage {
		cartID, err := c.Cookie(cartIDCookie)
		if err != nil || cartID == "" {
			cartID = uuid.NewString()
			c.SetCookie(cartIDCookie, cartID, 30*24*60*60, "/", "", false, true)
		}
		return cart.NewRedisStorage(client, cartID)
	}
}
