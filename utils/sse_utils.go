package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// Helper functions for SSE formatting

// WriteSSEEvent writes a named SSE frame with a JSON payload
func WriteSSEEvent(w io.Writer, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(w, "event: %s\ndata: {\"message\": \"Error creating message\"}\n\n", event)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

// WriteSSEComment writes a comment frame, used as a keep-alive
func WriteSSEComment(w io.Writer, text string) {
	fmt.Fprintf(w, ": %s\n\n", text)
}
