package main

import (
	"encoding/json"
	"strconv"
	"strings"
)

func toPrettyJSON(obj interface{}) string {
	bs, _ := json.MarshalIndent(obj, "", "  ")
	return string(bs)
}

// parseAnyInt accepts "123" or "0x7b"/"7b" and returns the parsed uint64.
func parseAnyInt(s string) (uint64, error) {
	isHex := strings.ContainsAny(s, "abcdefABCDEF")
	if strings.Contains(s, "0x") {
		isHex = true
		s = strings.ReplaceAll(s, "0x", "")
	}
	if isHex {
		return strconv.ParseUint(s, 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}
