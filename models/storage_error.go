package models

// StorageError is the JSON body the relay server sends with every failed
// storage request. It mirrors the error shape of Supabase storage so the
// same client code handles both.
type StorageError struct {
	StatusCode string `json:"statusCode"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

// StoredObject is the body of a successful upload.
type StoredObject struct {
	// Key is "bucket/name".
	Key string `json:"Key"`
}
