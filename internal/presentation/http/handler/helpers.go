package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cueclub-api/internal/presentation/http/middleware"
)

// GetStaffID extracts the authenticated staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get(middleware.ContextStaffID)
	if !exists {
		return nil
	}
	staffID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetStaffRole extracts the authenticated staff role from the Gin context
func GetStaffRole(c *gin.Context) string {
	return c.GetString(middleware.ContextStaffRole)
}

// paramID parses a UUID path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 when it does not bind.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindQuery decodes the query string, answering 400 when it does not bind.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

// optionalUUID parses s when present. Malformed values are ignored.
func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// queryTime parses an RFC 3339 query parameter when present.
func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+": use RFC 3339")
		return nil, false
	}
	return &t, true
}
