// Package dom implements a server-held tree of markup tags that can be
// rendered to HTML once and then kept in sync with a remote consumer by
// emitting minimal change records instead of re-rendering.
//
// A Tag is constructed unattached and inert. Preparing it binds a renderer
// proxy supplied by a Backend and activates it; from that point every
// mutation updates the proxy and produces exactly one change record, which
// is dispatched up the tree to the owning Document. A Document fans each
// record out to its subscribers, typically a live-update channel.
//
// Mutations and their record emission are synchronous and complete before
// the mutating call returns. The package does no internal locking: at most
// one logical actor may mutate a given tree at a time (see pkg/live for the
// session loop that enforces this per connection).
package dom
