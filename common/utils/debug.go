package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

// Debug emits one structured JSON line per event on stdout.
func Debug(service string, message string) {
	DebugWith(service, message, nil)
}

func DebugWith(service string, message string, extra Context) {
	context := make(Context, len(extra)+1)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	for k, v := range extra {
		context[k] = v
	}

	messageStruct := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(messageStruct)

	fmt.Println(string(data))
}
