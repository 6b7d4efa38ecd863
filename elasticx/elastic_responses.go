package elasticx

import "encoding/json"

type infoResponse struct {
	Version struct {
		Number string `json:"number"`
	} `json:"version"`
}

type bulkResponse struct {
	Took   int  `json:"took"`
	Errors bool `json:"errors"`
	// Items arrive in submission order, each keyed by its action name.
	Items []map[string]bulkResponseItem `json:"items"`
}

type bulkResponseItem struct {
	ID     string          `json:"_id"`
	Status int             `json:"status"`
	Error  json.RawMessage `json:"error"`
}
