package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is an E2E test client for the Iron Frontier generation server.
// It provides methods for the REST generation endpoints and the
// WebSocket event stream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	wsConn     *websocket.Conn
	wsMessages chan map[string]interface{}
	wsErrors   chan error
	wsCloseCh  chan struct{}
	wsMutex    sync.Mutex
	log        *logrus.Logger
}

// NewClient creates a new E2E test client.
func NewClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		wsMessages: make(chan map[string]interface{}, 100),
		wsErrors:   make(chan error, 10),
		wsCloseCh:  make(chan struct{}),
		log:        logger,
	}
}

func (c *Client) postJSON(path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reqBody)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request to %s failed with status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) getJSON(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request to %s failed with status %d: %s", path, resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// GenerateWorld calls POST /api/world/generate and decodes the response into out.
func (c *Client) GenerateWorld(seed uint32, name string, regionCount int, out interface{}) error {
	return c.postJSON("/api/world/generate", map[string]interface{}{
		"seed":         seed,
		"name":         name,
		"region_count": regionCount,
	}, out)
}

// GenerateLocationContent calls POST /api/location/content for locationID.
func (c *Client) GenerateLocationContent(locationID string, out interface{}) error {
	return c.postJSON("/api/location/content", map[string]interface{}{
		"location_id": locationID,
	}, out)
}

// GetNPCs calls GET /api/location/npcs?location_id=... .
func (c *Client) GetNPCs(locationID string, out interface{}) error {
	return c.getJSON("/api/location/npcs?location_id="+url.QueryEscape(locationID), out)
}

// ClearCache calls POST /api/cache/clear.
func (c *Client) ClearCache() error {
	return c.postJSON("/api/cache/clear", nil, nil)
}

// ConnectWebSocket connects to the generation event stream.
func (c *Client) ConnectWebSocket() error {
	c.wsMutex.Lock()
	defer c.wsMutex.Unlock()

	if c.wsConn != nil {
		return fmt.Errorf("WebSocket already connected")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	wsScheme := "ws"
	if u.Scheme == "https" {
		wsScheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/api/ws", wsScheme, u.Host)

	c.log.Debugf("Connecting to WebSocket: %s", wsURL)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to WebSocket: %w", err)
	}

	c.wsConn = conn
	go c.readWebSocketMessages()

	return nil
}

func (c *Client) readWebSocketMessages() {
	defer func() {
		close(c.wsMessages)
		close(c.wsErrors)
	}()

	for {
		select {
		case <-c.wsCloseCh:
			return
		default:
			var msg map[string]interface{}
			if err := c.wsConn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					c.wsErrors <- fmt.Errorf("WebSocket read error: %w", err)
				}
				return
			}
			c.wsMessages <- msg
		}
	}
}

// WaitForEvent waits for a WebSocket event with the given "type" field.
func (c *Client) WaitForEvent(eventType string, timeout time.Duration) (map[string]interface{}, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case msg, ok := <-c.wsMessages:
			if !ok {
				return nil, fmt.Errorf("websocket message channel closed")
			}
			if msg["type"] == eventType {
				return msg, nil
			}
		case err := <-c.wsErrors:
			return nil, err
		case <-timer.C:
			return nil, fmt.Errorf("timeout waiting for event %s", eventType)
		}
	}
}

// CloseWebSocket closes the WebSocket connection.
func (c *Client) CloseWebSocket() error {
	c.wsMutex.Lock()
	defer c.wsMutex.Unlock()

	if c.wsConn == nil {
		return nil
	}

	close(c.wsCloseCh)

	if err := c.wsConn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	); err != nil {
		c.log.Warnf("Failed to send close message: %v", err)
	}

	if err := c.wsConn.Close(); err != nil {
		return fmt.Errorf("failed to close WebSocket: %w", err)
	}

	c.wsConn = nil
	return nil
}

// Close closes all connections.
func (c *Client) Close() error {
	if c.wsConn != nil {
		return c.CloseWebSocket()
	}
	return nil
}

// WaitForHealth waits for the server to report healthy.
func (c *Client) WaitForHealth(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := c.httpClient.Get(c.baseURL + "/healthz")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become healthy within %v", timeout)
}
