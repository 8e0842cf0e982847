package util

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/sha3"
)

// hex encoded in json, instead of base64
type ByteSlice []byte

func (s ByteSlice) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(s))
}
func (s *ByteSlice) UnmarshalJSON(data []byte) error {
	var str string
	e := json.Unmarshal(data, &str)
	if e != nil {
		return e
	}

	bs, e := hex.DecodeString(str)
	if e != nil {
		return e
	}
	*s = bs
	return nil
}

func Sha3(bs []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(bs)
	return hash.Sum(nil)
}
