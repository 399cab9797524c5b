package news

import (
	"encoding/json"
)

// Item is a read-only snapshot of one upstream record. Fields the proxy does
// not model are kept in Extra and written back unchanged.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type,omitempty"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Descendants int    `json:"descendants,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// itemFields is the alias used to (un)marshal the modelled fields without
// recursing into the custom methods.
type itemFields Item

var knownFields = map[string]struct{}{
	"id": {}, "type": {}, "by": {}, "time": {}, "title": {},
	"url": {}, "score": {}, "descendants": {},
}

// UnmarshalJSON decodes the modelled fields and keeps the rest in Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	var fields itemFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range knownFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		fields.Extra = raw
	}

	*it = Item(fields)
	return nil
}

// MarshalJSON writes the modelled fields followed by Extra. Modelled fields
// win on key collisions.
func (it Item) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(itemFields(it))
	if err != nil {
		return nil, err
	}
	if len(it.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(it.Extra)+len(knownFields))
	for k, v := range it.Extra {
		merged[k] = v
	}
	var modelled map[string]json.RawMessage
	if err := json.Unmarshal(base, &modelled); err != nil {
		return nil, err
	}
	for k, v := range modelled {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Response is one page of the newest stories.
//
// Total is the length of the full identifier list known upstream. It is not
// adjusted for search filtering or for items that failed to resolve.
type Response struct {
	Total int    `json:"totalStories"`
	Items []Item `json:"newsStories"`
}

func emptyResponse() Response {
	return Response{Total: 0, Items: []Item{}}
}
