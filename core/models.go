package core

import (
	"encoding/binary"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for assist request records.
// It is generated from request content using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FlexStrings is a string list that tolerates scalar JSON input.
// Scraper-produced documents carry some fields as either a single string
// or a list of strings; both decode into the same slice.
type FlexStrings []string

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
// null decodes to an empty list.
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*f = FlexStrings{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = FlexStrings(list)
	return nil
}

// Department is a unit housed within a building.
type Department struct {
	Name           string            `json:"name"`
	Floor          string            `json:"floor,omitempty"`
	Description    string            `json:"description,omitempty"`
	Contact        string            `json:"contact,omitempty"`
	OperatingHours FlexStrings       `json:"operating_hours,omitempty"`
	Services       FlexStrings       `json:"services,omitempty"`
	Pricing        map[string]string `json:"pricing,omitempty"`
}

// Building represents a campus building or service location.
// Records are produced whole by external data-management tooling and
// consumed read-only by the search pipeline.
type Building struct {
	ID             string       `json:"id"`
	Name           string       `json:"building_name"`
	Description    string       `json:"description,omitempty"`
	Keywords       FlexStrings  `json:"search_keywords"`
	Phones         FlexStrings  `json:"phone_num,omitempty"`
	Emails         FlexStrings  `json:"email,omitempty"`
	OperatingHours FlexStrings  `json:"operating_hours,omitempty"`
	Services       FlexStrings  `json:"services_offered,omitempty"`
	Departments    []Department `json:"departments,omitempty"`
	Lat            *float64     `json:"lat,omitempty"`
	Lng            *float64     `json:"lng,omitempty"`
	Images         FlexStrings  `json:"image,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
// Absence of either suppresses location-dependent answers.
func (b *Building) HasCoordinates() bool {
	return b.Lat != nil && b.Lng != nil
}

// CalendarEvent is a single academic-calendar entry.
// The Term field names the owning bucket and is populated when events are
// flattened out of the calendar document at query time.
type CalendarEvent struct {
	Title       string      `json:"title"`
	Date        string      `json:"date"`
	Description string      `json:"description,omitempty"`
	Keywords    FlexStrings `json:"keyword"`
	Term        string      `json:"term,omitempty"`
}

// KeywordTokens returns the event's lowercased keyword token set.
// Each keyword entry may itself be a whitespace-delimited phrase; entries
// are split so that overlap scoring works on individual tokens.
func (e *CalendarEvent) KeywordTokens() []string {
	var tokens []string
	for _, kw := range e.Keywords {
		tokens = append(tokens, strings.Fields(strings.ToLower(kw))...)
	}
	return tokens
}

// Calendar groups calendar events under term labels (e.g. "Spring-2025").
// The whole calendar is stored as one document and bulk-replaced by an
// external ingestion process.
type Calendar map[string][]CalendarEvent

// AssistRequest is a completion request correlated with its eventual
// response by document identity. It is created by the assist broker and
// fulfilled asynchronously by a completion agent.
type AssistRequest struct {
	ID        ID        `json:"id"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"create_time"`
	MaxTokens int       `json:"max_tokens"`
	Response  string    `json:"response,omitempty"`
}

// Fulfilled reports whether a response has been recorded for the request.
func (r *AssistRequest) Fulfilled() bool {
	return r.Response != ""
}

// RequestID derives the correlation ID for an assist request from its
// prompt and creation time.
func RequestID(prompt string, createdAt time.Time) ID {
	return IDFromContent(prompt + "@" + strconv.FormatInt(createdAt.UnixNano(), 10))
}

// Distinguished SearchResult identifiers. Results carrying one of these
// are not building matches.
const (
	// AIResponseID marks an AI-generated fallback answer. When present the
	// result list contains exactly that one entry.
	AIResponseID = "ai-response"

	// AcademicEventID marks an academic-calendar match.
	AcademicEventID = "academic-event"
)

// SearchResult is one entry in a resolved query's result list.
type SearchResult struct {
	ID            string `json:"id"`
	Name          string `json:"building_name"`
	RelevantInfo  string `json:"relevant_info"`
	LocationQuery bool   `json:"is_location_query"`
}
