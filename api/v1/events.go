package v1

import (
	"time"

	"github.com/formbuilder-api/middleware"
	"github.com/formbuilder-api/realtime"
	"github.com/formbuilder-api/utils"
	"github.com/gin-gonic/gin"
)

// StreamTemplateEvents subscribes the caller to a template's notification
// events (newComment, commentDeleted, likeUpdated) over SSE. Visibility
// follows the template read rules, so private templates only stream to
// their owner, admins and allow-listed users.
func StreamTemplateEvents(c *gin.Context) {
	templateID := c.Param("templateId")

	if _, err := templateService.GetByID(middleware.CurrentUser(c), templateID); err != nil {
		fail(c, err)
		return
	}

	hub := realtime.Default()
	sub := hub.Subscribe(templateID)
	defer hub.Unsubscribe(templateID, sub)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case evt, ok := <-sub:
			if !ok {
				return
			}
			utils.WriteSSEEvent(c.Writer, evt.Type, evt)
			c.Writer.Flush()
		case <-keepalive.C:
			utils.WriteSSEComment(c.Writer, "keepalive")
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
