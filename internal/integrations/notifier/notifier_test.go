package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(nopLogger{})
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt event
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(message, &evt))
	return evt
}

func TestNotifyBusiness_DeliversToDashboard(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "businessId=biz-1")

	require.Eventually(t, func() bool { return hub.ConnectionCount("biz-1") == 1 },
		time.Second, 10*time.Millisecond)

	hub.NotifyBusiness("biz-1", "appointment.created", map[string]string{"id": "apt-1"})

	evt := readEvent(t, conn)
	assert.Equal(t, "appointment.created", evt.Type)
}

func TestNotifyCustomer_DeliversToCustomerConnection(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "customerId=cust-1")

	require.Eventually(t, func() bool { return hub.CustomerConnectionCount("cust-1") == 1 },
		time.Second, 10*time.Millisecond)

	hub.NotifyCustomer("cust-1", "appointment.slot_suggested", map[string]string{"id": "apt-1"})

	evt := readEvent(t, conn)
	assert.Equal(t, "appointment.slot_suggested", evt.Type)

	assert.Equal(t, 0, hub.ConnectionCount("cust-1"), "customer connections live in their own registry")
}

func TestNotifyCustomer_NoConnectionIsANoOp(t *testing.T) {
	hub, _ := newTestHub(t)
	hub.NotifyCustomer("cust-missing", "appointment.slot_suggested", nil)
}

func TestNotifyBusiness_ConcurrentCallersShareOneConnection(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "businessId=biz-1")

	require.Eventually(t, func() bool { return hub.ConnectionCount("biz-1") == 1 },
		time.Second, 10*time.Millisecond)

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.NotifyBusiness("biz-1", "appointment.updated", nil)
		}()
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		evt := readEvent(t, conn)
		assert.Equal(t, "appointment.updated", evt.Type)
	}
}

func TestServeHTTP_RequiresAnIdentity(t *testing.T) {
	_, srv := newTestHub(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
