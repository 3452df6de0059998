package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snowgate/snowgate/pkg/types"
	"github.com/snowgate/snowgate/pkg/version"
)

func (s *Server) serverInfoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := types.ServerInfo{
			Name:      ServerName,
			Version:   version.GetVersion(),
			Status:    "running",
			Transport: "http",
		}
		c.JSON(http.StatusOK, info)
	}
}

func (s *Server) listToolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := types.ToolListResponse{Tools: s.gateway.ListTools()}
		c.JSON(http.StatusOK, resp)
	}
}

// invokeToolHandler dispatches a tool call through the gateway.
// Both success and dispatch errors are returned with a 200 status: the
// outcome is carried in the response body, so clients parse one envelope
// and check for an "error" key instead of inspecting the transport status.
func (s *Server) invokeToolHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")

		var args map[string]any
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&args); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		result := s.gateway.Invoke(c.Request.Context(), name, args)
		c.JSON(http.StatusOK, result)
	}
}
