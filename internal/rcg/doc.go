// Package rcg defines the decoded game log records produced by the soccer
// simulator and the notification contract used to consume them.
//
// A record source (see the reader subpackage) walks a log in time order and
// calls one Handler method per record. Handlers never see raw bytes: shows,
// teams and play modes arrive already decoded, while configuration messages
// are forwarded verbatim for the handler to decode with the params
// subpackage.
package rcg
