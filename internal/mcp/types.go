package mcp

// --- Tool Arguments ---

// KVSetArgs are the arguments of kv_set.
type KVSetArgs struct {
	Key   string `json:"key" jsonschema:"The key to write. Empty keys are allowed"`
	Value string `json:"value" jsonschema:"The text value to store. Replaces any existing value"`
}

// KVKeyArgs name the key for kv_get and kv_remove.
type KVKeyArgs struct {
	Key string `json:"key" jsonschema:"The key to look up or remove"`
}

// --- Tool Results ---

// KVStatusResult is the confirmation returned by kv_set and kv_remove.
type KVStatusResult struct {
	Status string `json:"status"`
}

// KVGetResult reports whether kv_get found the key, and its value.
type KVGetResult struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}
