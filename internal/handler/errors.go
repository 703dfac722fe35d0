package handler

import "errors"

var errMissingHTTPAddress = errors.New("relay handlers need an http address")
