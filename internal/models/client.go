package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one websocket subscriber of the opportunity feed.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan *Opportunity

	closeOnce sync.Once
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan *Opportunity, 16),
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
		c.Conn.Close()
	})
}
