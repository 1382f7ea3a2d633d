package model

// SignRequest names the storage path components for a direct upload. All
// fields are optional; the server derives the object key from what is given.
type SignRequest struct {
	CollectionName string `json:"collectionName"`
	Index          int    `json:"index"`
	ExplicitKey    string `json:"explicitKey"`
}

// SignGrant authorizes exactly one direct upload. Parameters holds the full
// map the physical upload call must send; the signature covers the signed
// subset of it, byte-for-byte.
type SignGrant struct {
	Signature         string            `json:"signature"`
	Timestamp         int64             `json:"timestamp"`
	AccountID         string            `json:"accountId"`
	APIKeyPublic      string            `json:"apiKeyPublic"`
	Parameters        map[string]string `json:"parameters"`
	DebugStringSigned string            `json:"debugStringSigned"`
}
