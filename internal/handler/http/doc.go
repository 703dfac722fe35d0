// Package http implements the blob relay's HTTP transport.
//
// It exposes a Supabase compatible subset of the storage object API:
// uploading and downloading whole objects addressed by bucket and name.
// Requests are authorised with role-bearing API keys, traced, logged and
// optionally gzip encoded before they reach the blob storage.
package http
