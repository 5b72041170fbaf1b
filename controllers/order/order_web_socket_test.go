package orderControllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benms/next-tailwind-amazona/models"
)

func feedClientCount() int {
	wsMu.Lock()
	defer wsMu.Unlock()
	return len(wsClients)
}

func waitForFeedClients(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for feedClientCount() != n && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, n, feedClientCount())
}

func TestOrderFeed_BroadcastsToConnectedClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/feed", OrderFeedHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForFeedClients(t, 1)

	broadcastOrderEvent("order.paid", &models.Order{ID: 7, OrderRef: "ref-7"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg orderFeedMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "order.paid", msg.Event)
	require.NotNil(t, msg.Order)
	assert.Equal(t, uint(7), msg.Order.ID)
}

// A client that went away must not linger in the broadcast set: either
// its read loop notices the close, or the next failed write evicts it.
func TestOrderFeed_DropsDeadClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/feed", OrderFeedHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	waitForFeedClients(t, 1)
	require.NoError(t, conn.Close())

	order := &models.Order{ID: 8, OrderRef: "ref-8"}
	deadline := time.Now().Add(2 * time.Second)
	for feedClientCount() != 0 && time.Now().Before(deadline) {
		broadcastOrderEvent("order.paid", order)
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, feedClientCount())
}
