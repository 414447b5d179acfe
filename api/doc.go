// Package api exposes the battle service over HTTP. Routes are JSON
// request/response; real-time session events reach clients through the
// websocket hub, which the server wires up when a battle starts.
package api
