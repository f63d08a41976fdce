package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the Hash of v's JSON encoding. Values JSON cannot encode
// (NaN, infinities, channels) are an error rather than a shared empty hash.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return Hash(data), nil
}

// artifactKey returns "artifact:<sha256>" over the scene hash and every
// option that changes the rendered bytes. Fields are length-prefixed so no
// two option sets share an encoding.
func artifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	for _, field := range []string{
		sceneHash,
		opts.Format,
		strconv.Itoa(opts.CellSize),
		strconv.FormatBool(opts.Color),
	} {
		fmt.Fprintf(h, "%d:%s", len(field), field)
	}
	return "artifact:" + hex.EncodeToString(h.Sum(nil))
}
