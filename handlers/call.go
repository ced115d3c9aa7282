package handlers

import (
	"errors"
	"net/http"

	"stayline/services/session"
	"stayline/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartCall loads the caller's durable context into the session cache. The
// telephony layer invokes this when a call connects.
func StartCall(c *gin.Context) {
	var input struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	data := Lifecycle.StartCall(input.UserID)
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"contextFields": len(data),
	})
}

// EndCall flushes the session and hands the lead off to CRM sync. A flush
// failure answers 500 so the telephony layer retries the end-call webhook;
// the cache entry survives until a flush succeeds.
func EndCall(c *gin.Context) {
	var input struct {
		UserID  string `json:"user_id"`
		CallID  string `json:"call_id"`
		Summary string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	callID := input.CallID
	if callID == "" {
		callID = uuid.New().String()
	}

	if err := Lifecycle.EndCall(input.UserID, callID, input.Summary); err != nil {
		if errors.Is(err, session.ErrNoEntry) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active session for user"})
			return
		}
		utils.GetLogger().Error("End-call flush failed",
			zap.String("userId", input.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "synced": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "synced": true, "callId": callID})
}
