package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/clearfeed/mediascope/pkg/diet"
)

// ErrEncrypted is returned by Decode when the raw record carries the
// encryption wrapper and no password was supplied.
var ErrEncrypted = errors.New("storage: state is encrypted")

// Encode serializes the state for the JSON boundary. Domain sets become
// sorted arrays via diet.StringSet's marshaler; no call site converts sets
// by hand.
func Encode(s *State) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses a raw persisted record back into state, repairing derived
// fields that are missing or malformed. Idempotent: decoding the encoding
// of a decoded state yields the same state.
//
// Repair rules, per bucket:
//   - domains that arrived as anything but an array (a stray {} from a
//     failed serialization, say) come back as the set of visit domains
//   - empty or absent categories are retallied from visits
func Decode(raw []byte) (*State, error) {
	if gjson.GetBytes(raw, "encryptionEnabled").Bool() {
		return nil, ErrEncrypted
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("storage: snapshot is not valid JSON")
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("storage: decode snapshot: %w", err)
	}
	if s.UserData.WeeklyData == nil {
		s.UserData.WeeklyData = make(map[string]*diet.WeekBucket)
	}
	for key, bucket := range s.UserData.WeeklyData {
		if bucket == nil {
			delete(s.UserData.WeeklyData, key)
			continue
		}
		bucket.Repair()
	}
	return &s, nil
}
