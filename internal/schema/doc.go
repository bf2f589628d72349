// Package schema provides typed helpers over datalog.Log for the
// record kinds an application actually emits: table and field
// declarations, data rows, time correlation, boot markers, and
// exception dumps. Each helper marshals an entry.* payload and hands it
// to Log.WriteEntry, so callers never build a Header or touch the
// write path's padding and retirement machinery directly.
//
// Table identifiers are allocated in RAM by AllocateTableID and are
// only meaningful within the boot session that assigned them; an
// archiver must re-learn the mapping from the table/field records
// following each boot record. Field identifiers are supplied by the
// application, not allocated here.
package schema
