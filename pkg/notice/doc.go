// Package notice provides the wire types shared by every part of the board
// client: the server-owned Message, the client-built CreateMessageRequest,
// the Priority enumeration and the server Stats summary.
//
// # Ownership
//
// Messages are owned by the server. Identifiers and timestamps are assigned
// on acceptance and never change; the client only ever replaces its whole
// collection with a fresh snapshot, it never edits a Message in place.
//
// # Priority
//
// Priority is a closed enumeration (low, normal, high, urgent) on the way in
// and a total function on the way out. ParsePriority is the only constructor
// the UI uses, so nothing else can be submitted. A payload carrying any other
// string still decodes, and every presentation helper treats it as normal:
//
//	p := notice.Priority("critical")
//	p.Label()    // "🔵 普通"
//	p.Severity() // 3
//
// # Variants
//
// The rich server variant carries an enabled flag on every message; the
// simple one omits it. Message.Enabled is a pointer so that the two cases
// stay distinguishable.
package notice
