package server

import "errors"

// errMissingHTTPServer is returned by NewServer when there is no HTTP
// handler or no address to listen on.
var errMissingHTTPServer = errors.New("relay server needs an http handler and a listen address")
