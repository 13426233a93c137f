package controller

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
	ws "github.com/hawkerhub/hawkerhub-backend/internal/websocket"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// EventsController attaches admin sessions to the live event feed.
type EventsController struct {
	hub *ws.Hub
}

func NewEventsController(hub *ws.Hub) *EventsController {
	return &EventsController{hub: hub}
}

// Subscribe upgrades the request to a websocket and streams governance
// events until the client disconnects.
func (ctrl *EventsController) Subscribe(c *gin.Context) {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ws.ServeWS(ctrl.hub, c.Writer, c.Request, adminID); err != nil {
		logger.Error("Failed to upgrade admin feed connection", err, map[string]interface{}{
			"admin_id": adminID,
		})
	}
}
