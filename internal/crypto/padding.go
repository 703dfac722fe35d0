package crypto

import "bytes"

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data[:len(data):len(data)], bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrPaddingOrAuthFailure
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrPaddingOrAuthFailure
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrPaddingOrAuthFailure
		}
	}

	return data[:len(data)-n], nil
}
