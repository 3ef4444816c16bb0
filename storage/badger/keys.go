package badger

import (
	"fmt"
	"strings"

	"github.com/campuskit/wayfinder/core"
)

// Key prefixes for different data types
const (
	buildingRecordPrefix  = "bldrec"
	buildingKeywordPrefix = "bldkw"
	calendarRecordKey     = "calrec:academic"
	requestRecordPrefix   = "astreq"
)

// makeBuildingKey generates a key for a building record by ID.
func makeBuildingKey(id string) []byte {
	return []byte(buildingRecordPrefix + ":" + id)
}

// makeKeywordKey generates a composite key for the keyword index.
// Format: prefix:keyword:buildingID. The stored value is the building ID,
// so index hits resolve without parsing the key.
func makeKeywordKey(keyword, buildingID string) []byte {
	return []byte(buildingKeywordPrefix + ":" + keyword + ":" + buildingID)
}

// makePartialKeywordKey generates a prefix for scanning all buildings
// indexed under one keyword.
func makePartialKeywordKey(keyword string) []byte {
	return []byte(buildingKeywordPrefix + ":" + keyword + ":")
}

// makeRequestKey generates a key for an assist request record by ID.
func makeRequestKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", requestRecordPrefix, id))
}

// requestWatchPrefix is the prefix subscribed to for request changes.
func requestWatchPrefix() []byte {
	return []byte(requestRecordPrefix + ":")
}

// slugFromName derives a stable building ID from its display name.
// Lowercases and replaces runs of non-alphanumerics with single dashes.
func slugFromName(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		default:
			if !dash && sb.Len() > 0 {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
