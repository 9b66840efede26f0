package model

import "encoding/json"

// PhotoRecordKey is the record key holding the resolved photo.
const PhotoRecordKey = "photo"

// Record is the finished entity emitted by a successful submission. The
// wizard keeps no copy; persisting it is the host's business.
type Record struct {
	Entity string
	Photo  string
	Values map[string]string
}

// Fields flattens the record into one map, photo included.
func (r Record) Fields() map[string]string {
	out := make(map[string]string, len(r.Values)+1)
	out[PhotoRecordKey] = r.Photo
	for k, v := range r.Values {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the flattened field map.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}
