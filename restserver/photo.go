// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/vinod-kayartaya/go-collection/restdata"
	"github.com/vinod-kayartaya/go-collection/uploads"
)

// maxPhotoBytes bounds how much of a multipart upload is held in
// memory before spilling to temporary files.
const maxPhotoBytes = 32 << 20

// photoHandler serves the photo attachment of a single record.  It
// does not go through resourceHandler: uploads arrive as multipart
// form data, not as a JSON body, and downloads are raw file bytes.
type photoHandler struct {
	API *restAPI
}

func (api *restAPI) photoHandler() *photoHandler {
	return &photoHandler{API: api}
}

func (h *photoHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	api := h.API
	responseType, err := negotiateResponse(req)
	if err != nil {
		responseType = restdata.V1JSONMediaType
		// A GET of the photo itself ignores negotiation, so only
		// fail the methods that answer with a wire object.
		if req.Method == "GET" || req.Method == "HEAD" {
			err = nil
		}
	}

	var ctx *context
	if err == nil {
		ctx, err = api.Context(req)
	}
	if err == nil {
		// The attachment only exists relative to a live record.
		_, err = ctx.Collection.Get(ctx.RecordID)
	}

	var out interface{}
	status := http.StatusNoContent
	if err == nil {
		switch req.Method {
		case "GET", "HEAD":
			h.serveFile(resp, req, ctx)
			return
		case "POST":
			out, err = h.attach(ctx, req)
			status = http.StatusCreated
		case "DELETE":
			err = api.Uploads.Detach(ctx.Collection.Schema().Name, ctx.RecordID)
			err = mapUploadError(err)
		default:
			err = errMethodNotAllowed{Method: req.Method}
		}
	}

	if err != nil {
		status = restdata.StatusFor(err)
		if status == http.StatusNotAcceptable {
			out = nil
		} else {
			out = errorBody(err, status, api.Clock.Now())
		}
	}
	writeResponse(resp, responseType, status, out)
}

// serveFile streams the stored attachment back to the client, with a
// Content-Type derived from the stored extension.
func (h *photoHandler) serveFile(resp http.ResponseWriter, req *http.Request, ctx *context) {
	api := h.API
	r, name, err := api.Uploads.Open(ctx.Collection.Schema().Name, ctx.RecordID)
	if err != nil {
		err = mapUploadError(err)
		status := restdata.StatusFor(err)
		writeResponse(resp, restdata.V1JSONMediaType, status,
			errorBody(err, status, api.Clock.Now()))
		return
	}
	defer r.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp.Header().Set("Content-Type", contentType)
	resp.WriteHeader(http.StatusOK)
	if req.Method != "HEAD" {
		io.Copy(resp, r)
	}
}

// attach reads the "photo" part of a multipart form and stores it as
// the record's attachment.
func (h *photoHandler) attach(ctx *context, req *http.Request) (interface{}, error) {
	err := req.ParseMultipartForm(maxPhotoBytes)
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	file, header, err := req.FormFile("photo")
	if err != nil {
		return nil, restdata.ErrBadRequest{
			Err: errors.New("multipart form must carry a \"photo\" file part"),
		}
	}
	defer file.Close()

	name, err := h.API.Uploads.Attach(
		ctx.Collection.Schema().Name, ctx.RecordID, header.Filename, file)
	if err != nil {
		return nil, mapUploadError(err)
	}
	return restdata.PhotoInfo{Filename: name}, nil
}

// mapUploadError wraps the uploads package's errors with their HTTP
// statuses.
func mapUploadError(err error) error {
	switch err.(type) {
	case uploads.ErrNoAttachment:
		return restdata.ErrNotFound{Err: err}
	case uploads.ErrBadExtension:
		return restdata.ErrBadRequest{Err: err}
	}
	return err
}
