// Package wsource adapts a WebSocket feed into a propcell push source.
//
// A Feed dials a WebSocket endpoint, decodes every message it receives as
// JSON into T, and pushes the decoded values to its subscribers. It
// implements propcell.Source, so a feed plugs directly into
// propcell.FromSource:
//
//	feed, err := wsource.Dial[Quote](ctx, "wss://example.com/quotes")
//	if err != nil {
//	    return err
//	}
//	price := propcell.FromSource[Quote](feed, Quote{})
//
// A normal close from the peer completes the feed's stream; any other read
// failure fails it. Either way the property built on top is terminated,
// exactly once, and keeps serving its last value.
package wsource
