package tokenprovider

import (
	"fmt"
	"io"
	"net/http"
)

// maxBody caps token service responses; anything larger is malformed.
const maxBody = 1 << 20

func readAll(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read token service response: %w", err)
	}
	return body, nil
}
