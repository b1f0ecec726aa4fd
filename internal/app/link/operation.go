package link

import (
	"io"
	"net/http"
	"regexp"

	"github.com/tidwall/gjson"
)

var operationNamePattern = regexp.MustCompile(`(?:query|mutation|subscription)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// operationName pulls the GraphQL operation name out of a request body for logging.
// The request body itself is left untouched.
func operationName(req *http.Request) string {
	if req.GetBody == nil {
		return "unknown"
	}
	rc, err := req.GetBody()
	if err != nil {
		return "unknown"
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, 64<<10))
	if err != nil {
		return "unknown"
	}

	if name := gjson.GetBytes(body, "operationName").String(); name != "" {
		return name
	}

	m := operationNamePattern.FindStringSubmatch(gjson.GetBytes(body, "query").String())
	if m == nil {
		return "anonymous"
	}
	return m[1]
}
