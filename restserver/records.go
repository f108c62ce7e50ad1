// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/vinod-kayartaya/go-collection/restdata"
)

// RecordList returns one page of a collection's records.
func (api *restAPI) RecordList(ctx *context) (interface{}, error) {
	page, err := ctx.Page()
	if err != nil {
		return nil, err
	}
	records, err := ctx.Collection.List(page)
	if err != nil {
		return nil, err
	}
	result := restdata.RecordList{
		Records: make([]restdata.RecordData, 0, len(records)),
		Page:    page.Number,
		Size:    page.Size,
	}
	for _, record := range records {
		result.Records = append(result.Records, restdata.RecordData(record))
	}
	return result, nil
}

// RecordPost creates a new record from the posted fields.  The
// response carries the stored record and a Location: header pointing
// at it.
func (api *restAPI) RecordPost(ctx *context, in interface{}) (interface{}, error) {
	data, valid := in.(restdata.RecordData)
	if !valid {
		return nil, errUnmarshal
	}
	record, err := ctx.Collection.Create(data)
	if err != nil {
		return nil, err
	}
	var location string
	err = buildURLs(api.Router,
		"collection", ctx.Collection.Schema().Name,
		"id", record.ID()).
		URL(&location, "record").
		Error
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: location,
		Body:     restdata.RecordData(record),
	}, nil
}

// RecordGet retrieves a single record by identity.
func (api *restAPI) RecordGet(ctx *context) (interface{}, error) {
	record, err := ctx.Collection.Get(ctx.RecordID)
	if err != nil {
		return nil, err
	}
	return restdata.RecordData(record), nil
}

// RecordPut replaces a record completely; declared fields absent from
// the input are cleared to null.
func (api *restAPI) RecordPut(ctx *context, in interface{}) (interface{}, error) {
	data, valid := in.(restdata.RecordData)
	if !valid {
		return nil, errUnmarshal
	}
	record, err := ctx.Collection.Update(ctx.RecordID, data)
	if err != nil {
		return nil, err
	}
	return restdata.RecordData(record), nil
}

// RecordPatch updates only the fields present and non-null in the
// input.
func (api *restAPI) RecordPatch(ctx *context, in interface{}) (interface{}, error) {
	data, valid := in.(restdata.RecordData)
	if !valid {
		return nil, errUnmarshal
	}
	record, err := ctx.Collection.Patch(ctx.RecordID, data)
	if err != nil {
		return nil, err
	}
	return restdata.RecordData(record), nil
}

// RecordDelete removes a record permanently and releases its photo
// attachment, if it has one.
func (api *restAPI) RecordDelete(ctx *context) (interface{}, error) {
	err := ctx.Collection.Delete(ctx.RecordID)
	if err != nil {
		return nil, err
	}
	if api.Uploads != nil {
		err = api.Uploads.Release(ctx.Collection.Schema().Name, ctx.RecordID)
	}
	return nil, err
}
