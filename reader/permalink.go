package reader

import (
	"fmt"
	"strconv"
	"strings"
)

// Scheme identifies which permalink shape was used to enter the
// session. All paths emitted during the session keep the entry scheme.
type Scheme int

const (
	// SchemeCurrent is novels/{novelId}/chapters/{chapterNumber}.
	SchemeCurrent Scheme = iota
	// SchemeLegacy is novel/{novelId}/read/{chapterNumber}.
	SchemeLegacy
)

// ParsePath resolves either permalink scheme. chapterNumber is 0 when
// the path does not name a chapter.
func ParsePath(path string) (novelID string, chapterNumber int, scheme Scheme, err error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return "", 0, SchemeCurrent, fmt.Errorf("unrecognized path: %s", path)
	}

	switch parts[0] {
	case "novels":
		scheme = SchemeCurrent
		novelID = parts[1]
		if len(parts) >= 4 && parts[2] == "chapters" {
			chapterNumber, err = strconv.Atoi(parts[3])
			if err != nil {
				return "", 0, scheme, fmt.Errorf("invalid chapter number: %s", parts[3])
			}
		}
	case "novel":
		scheme = SchemeLegacy
		novelID = parts[1]
		if len(parts) >= 4 && parts[2] == "read" {
			chapterNumber, err = strconv.Atoi(parts[3])
			if err != nil {
				return "", 0, scheme, fmt.Errorf("invalid chapter number: %s", parts[3])
			}
		}
	default:
		return "", 0, SchemeCurrent, fmt.Errorf("unrecognized path: %s", path)
	}

	if novelID == "" {
		return "", 0, scheme, fmt.Errorf("missing novel id: %s", path)
	}
	return novelID, chapterNumber, scheme, nil
}

// FormatPath renders a chapter permalink in the given scheme.
func FormatPath(scheme Scheme, novelID string, chapterNumber int) string {
	if scheme == SchemeLegacy {
		return fmt.Sprintf("/novel/%s/read/%d", novelID, chapterNumber)
	}
	return fmt.Sprintf("/novels/%s/chapters/%d", novelID, chapterNumber)
}
