// Package inventory records provisioning runs and the devices each run
// generated.
//
// The inventory answers "which adapter configurations exist for this
// subscriber, and which run produced them". It is backed by SQLite through
// the Repository interface; the schema lives in the migrations package.
package inventory
