package model

// EventName is the name of a mutating catalog or permissions API call as
// recorded by the audit trail.
type EventName string

// Catalog events.
const (
	EventCreateDatabase       EventName = "CreateDatabase"
	EventUpdateDatabase       EventName = "UpdateDatabase"
	EventDeleteDatabase       EventName = "DeleteDatabase"
	EventCreateTable          EventName = "CreateTable"
	EventUpdateTable          EventName = "UpdateTable"
	EventDeleteTable          EventName = "DeleteTable"
	EventBatchCreatePartition EventName = "BatchCreatePartition"
)

// Permissions events.
const (
	EventRegisterResource       EventName = "RegisterResource"
	EventDeregisterResource     EventName = "DeregisterResource"
	EventPutDataLakeSettings    EventName = "PutDataLakeSettings"
	EventCreateLFTag            EventName = "CreateLFTag"
	EventDeleteLFTag            EventName = "DeleteLFTag"
	EventUpdateLFTag            EventName = "UpdateLFTag"
	EventAddLFTagsToResource    EventName = "AddLFTagsToResource"
	EventGrantPermissions       EventName = "GrantPermissions"
	EventRevokePermissions      EventName = "RevokePermissions"
	EventBatchGrantPermissions  EventName = "BatchGrantPermissions"
	EventBatchRevokePermissions EventName = "BatchRevokePermissions"
)

// ReplicatedEvents is the allow-list of event names captured by the ingestor
// and understood by the replayer.
var ReplicatedEvents = []EventName{
	EventCreateDatabase,
	EventUpdateDatabase,
	EventDeleteDatabase,
	EventCreateTable,
	EventUpdateTable,
	EventDeleteTable,
	EventBatchCreatePartition,
	EventRegisterResource,
	EventDeregisterResource,
	EventPutDataLakeSettings,
	EventCreateLFTag,
	EventDeleteLFTag,
	EventUpdateLFTag,
	EventAddLFTagsToResource,
	EventGrantPermissions,
	EventRevokePermissions,
	EventBatchGrantPermissions,
	EventBatchRevokePermissions,
}

// String returns the string representation of the event name.
func (n EventName) String() string {
	return string(n)
}

// IsReplicated reports whether n is in the replication allow-list.
func (n EventName) IsReplicated() bool {
	for _, r := range ReplicatedEvents {
		if r == n {
			return true
		}
	}
	return false
}

// IsPermissions reports whether n is a permissions-service event.
func (n EventName) IsPermissions() bool {
	switch n {
	case EventRegisterResource, EventDeregisterResource, EventPutDataLakeSettings,
		EventCreateLFTag, EventDeleteLFTag, EventUpdateLFTag, EventAddLFTagsToResource,
		EventGrantPermissions, EventRevokePermissions,
		EventBatchGrantPermissions, EventBatchRevokePermissions:
		return true
	}
	return false
}
