package utils

import (
	"encoding/binary"
	"encoding/hex"
)

func BytesToHex(bytes []byte) string {
	return hex.EncodeToString(bytes)
}

func HexToBytes(str string) ([]byte, error) {
	bytes, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

func Int64ToBytes(i int64) []byte {
	b := make([]byte, 8)
	binary.PutVarint(b, i)
	return b
}

// StringToBytes length-prefixes the string so that concatenated canonical
// encodings stay unambiguous across variable-length fields.
func StringToBytes(s string) []byte {
	b := Int64ToBytes(int64(len(s)))
	return append(b, []byte(s)...)
}
