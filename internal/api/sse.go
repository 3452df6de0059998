package api

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snowgate/snowgate/pkg/types"
	"go.uber.org/zap"
)

// streamEventsHandler serves the heartbeat event stream.
// Every connection starts with a single connection event, followed by ping
// events until the client goes away. The loop selects on the request context
// at every sleep boundary: a stream goroutine must never outlive its client.
func (s *Server) streamEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		writeStreamEvent(c.Writer, types.StreamEvent{
			Type:   types.StreamEventConnection,
			Status: "connected",
		})
		c.Writer.Flush()

		ticker := time.NewTicker(s.heartbeatInterval)
		defer ticker.Stop()

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				s.logger.Debug("heartbeat stream client disconnected",
					zap.String("client", c.ClientIP()),
				)
				return
			case <-ticker.C:
				writeStreamEvent(c.Writer, types.StreamEvent{
					Type:      types.StreamEventPing,
					Timestamp: time.Now().Unix(),
				})
				c.Writer.Flush()
			}
		}
	}
}

// writeStreamEvent writes one event in SSE framing: "data: <json>\n\n".
func writeStreamEvent(w io.Writer, ev types.StreamEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", b)
}
