// README: Common identifier type shared across modules.
package types

// ID is an opaque identifier (conversation records, chat user ids).
type ID string
