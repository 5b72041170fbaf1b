package cart

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const cookieMaxAge = 30 * 24 * 60 * 60 // 30 days

// CookieStorage backs the cart slot onto a request cookie under the
// fixed key. Construct one per request; Save rewrites the response
// cookie so the client carries the document across page loads.
type CookieStorage struct {
	c *gin.Context
}

func NewCookieStorage(c *gin.Context) *CookieStorage {
	return &CookieStorage{c: c}
}

func (s *CookieStorage) Load() (*State, bool) {
	raw, err := s.c.Cookie(StorageKey)
	if err != nil {
		return nil, false
	}
	return decodeState([]byte(raw))
}

func (s *CookieStorage) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.c.SetCookie(StorageKey, string(data), cookieMaxAge, "/", "", false, true)
	return nil
}

func (s *CookieStorage) Clear() error {
	s.c.SetCookie(StorageKey, "", -1, "/", "", false, true)
	return nil
}
