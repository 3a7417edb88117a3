// Package protocol defines the wire format of the live-update channel.
//
// The server pushes a full "sync" message after the initial render, then
// batches of change records as "changes" messages. Control messages
// (ping, pong, close, ack) flow in both directions. Everything is JSON;
// the change-record schema matches what the dom package emits.
package protocol
