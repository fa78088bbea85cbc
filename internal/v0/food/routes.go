package food

import (
	"mensa/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the fulfillment webhook on "/" and "/webhook".
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	webhook := rg.Group("")
	webhook.Use(authMiddleware.RequireWebhookToken())
	webhook.Use(authMiddleware.RateLimit())
	{
		webhook.POST("/", h.PostWebhook)
		webhook.POST("/webhook", h.PostWebhook)
	}
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
