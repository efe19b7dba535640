// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and body decoding, so that
handlers report malformed input the same way.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dossier/internal/platform/apperr"
	"github.com/taibuivan/dossier/internal/platform/constants"
	"github.com/taibuivan/dossier/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
RawJSON reads a bounded request body and checks that it is well-formed JSON.

Returns:
  - []byte: The raw payload
  - error: validate.ErrInvalidJSON, or 413 when the body exceeds the ingest limit
*/
func RawJSON(writer http.ResponseWriter, request *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(writer, request.Body, constants.MaxIngestBytes)

	payload, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &apperr.AppError{
				Code:       "PAYLOAD_TOO_LARGE",
				Message:    "Request body is too large",
				HTTPStatus: http.StatusRequestEntityTooLarge,
			}
		}
		return nil, validate.ErrInvalidJSON
	}

	if !json.Valid(payload) {
		return nil, validate.ErrInvalidJSON
	}

	return payload, nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
