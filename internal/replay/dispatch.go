package replay

import (
	"github.com/alfredjeanlab/lfsync/internal/catalog"
	"github.com/alfredjeanlab/lfsync/internal/model"
)

// handler describes how one event name is replayed.
type handler struct {
	op catalog.Operation
	// idempotent lists the error kinds that mean the change is already in
	// effect on the target.
	idempotent []catalog.ErrorKind
	// prepare rewrites the normalized parameters before decoding.
	prepare func(params map[string]any, opts Options) error
}

// tolerates reports whether an error of kind k counts as success.
func (h handler) tolerates(k catalog.ErrorKind) bool {
	for _, ik := range h.idempotent {
		if ik == k {
			return true
		}
	}
	return false
}

var (
	alreadyExists         = []catalog.ErrorKind{catalog.KindAlreadyExists}
	alreadyExistsOrGone   = []catalog.ErrorKind{catalog.KindAlreadyExists, catalog.KindEntityNotFound}
	accessDenied          = []catalog.ErrorKind{catalog.KindAccessDenied}
	accessDeniedOrExists  = []catalog.ErrorKind{catalog.KindAccessDenied, catalog.KindAlreadyExists}
	accessDeniedOrGone    = []catalog.ErrorKind{catalog.KindAccessDenied, catalog.KindEntityNotFound}
	entityNotFound        = []catalog.ErrorKind{catalog.KindEntityNotFound}
	entityNotFoundOrInput = []catalog.ErrorKind{catalog.KindEntityNotFound, catalog.KindInvalidInput}
	invalidInput          = []catalog.ErrorKind{catalog.KindInvalidInput}
)

var handlers = map[model.EventName]handler{
	model.EventCreateTable:            {op: catalog.OpCreateTable, idempotent: alreadyExists, prepare: prepareTable},
	model.EventUpdateTable:            {op: catalog.OpUpdateTable, idempotent: alreadyExistsOrGone, prepare: prepareTable},
	model.EventDeleteTable:            {op: catalog.OpDeleteTable, idempotent: alreadyExistsOrGone},
	model.EventCreateDatabase:         {op: catalog.OpCreateDatabase, idempotent: alreadyExists},
	model.EventUpdateDatabase:         {op: catalog.OpUpdateDatabase, idempotent: alreadyExistsOrGone},
	model.EventDeleteDatabase:         {op: catalog.OpDeleteDatabase, idempotent: alreadyExistsOrGone},
	model.EventBatchCreatePartition:   {op: catalog.OpBatchCreatePartition, idempotent: alreadyExists, prepare: preparePartitions},
	model.EventRegisterResource:       {op: catalog.OpRegisterResource, idempotent: alreadyExists},
	model.EventDeregisterResource:     {op: catalog.OpDeregisterResource, idempotent: alreadyExistsOrGone},
	model.EventPutDataLakeSettings:    {op: catalog.OpPutDataLakeSettings, idempotent: accessDenied, prepare: prepareSettings},
	model.EventCreateLFTag:            {op: catalog.OpCreateLFTag, idempotent: accessDeniedOrExists},
	model.EventDeleteLFTag:            {op: catalog.OpDeleteLFTag, idempotent: accessDeniedOrGone},
	model.EventUpdateLFTag:            {op: catalog.OpUpdateLFTag, idempotent: accessDenied},
	model.EventAddLFTagsToResource:    {op: catalog.OpAddLFTagsToResource, idempotent: alreadyExists},
	model.EventGrantPermissions:       {op: catalog.OpGrantPermissions, idempotent: entityNotFound},
	model.EventRevokePermissions:      {op: catalog.OpRevokePermissions, idempotent: entityNotFoundOrInput},
	model.EventBatchGrantPermissions:  {op: catalog.OpBatchGrantPermissions, idempotent: invalidInput},
	model.EventBatchRevokePermissions: {op: catalog.OpBatchRevokePermissions, idempotent: invalidInput},
}
