// Package notify holds the payload shared by the feed.Notifier
// implementations that fan queued transactions out to other processes.
package notify

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
)

// AllAddresses is the scope of the chain-wide feed.
const AllAddresses = "all"

// Message announces transactions queued by a feed's polling.
type Message struct {
	ChainID      int                    `json:"chainId"`
	Address      string                 `json:"address,omitempty"`
	Transactions []activity.Transaction `json:"transactions"`
	QueuedAt     time.Time              `json:"queuedAt"`
}

// Encode serializes m as JSON.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a payload produced by Encode.
func Decode(data []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(data, &m)
	return m, err
}

// Scope names the feed of address in keys and topics: the lowercased address,
// or AllAddresses for the chain-wide feed.
func Scope(address string) string {
	if address == "" {
		return AllAddresses
	}
	return strings.ToLower(address)
}
