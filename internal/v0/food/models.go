package food

import (
	"fmt"
	"strings"
)

// WebhookRequest is the part of the assistant's fulfillment request the webhook reads
type WebhookRequest struct {
	Lang   string `json:"lang"`
	Result Result `json:"result"`
}

type Result struct {
	Metadata   Metadata       `json:"metadata"`
	Parameters map[string]any `json:"parameters"`
}

type Metadata struct {
	IntentName string `json:"intentName"`
}

// Day returns the "day" parameter, empty when missing
func (r WebhookRequest) Day() string {
	v, ok := r.Result.Parameters["day"]
	if !ok || v == nil {
		return ""
	}
	switch day := v.(type) {
	case string:
		return strings.TrimSpace(day)
	default:
		return strings.TrimSpace(fmt.Sprint(day))
	}
}

// WebhookResponse carries the same text for speech and display
type WebhookResponse struct {
	Speech      string `json:"speech"`
	DisplayText string `json:"displayText"`
}

func NewWebhookResponse(message string) WebhookResponse {
	return WebhookResponse{Speech: message, DisplayText: message}
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
