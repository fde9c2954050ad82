// Package rtbhouse provides a typed client for the RTB House reporting API.
//
// The client covers account metadata (user info, advertisers, campaigns,
// offers), billing, RTB statistics and conversion streaming against the v5
// panel API.
//
// # Usage
//
// Create credentials, then a client:
//
//	auth, err := rtbhouse.NewTokenAuth("your-api-token")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := rtbhouse.NewClient(auth, logger,
//		rtbhouse.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	advertisers, err := client.GetAdvertisers(ctx)
//
// One Client owns one HTTP session and is safe for concurrent use; issue
// calls from as many goroutines as needed. GetStatsForAdvertisers fans out
// over several advertisers with bounded concurrency.
//
// # Parameters
//
// Dates are passed as rtbhouse.Date values and encoded as dd-mm-yyyy on the
// wire. Group-by dimensions, metrics, device types and count conventions are
// closed enum types; a value outside the set fails with *ParameterError
// before any request is sent. Optional parameters left unset are omitted from
// the request entirely.
//
// # Results
//
// Responses decode into typed records. Metric fields use Number, which
// accepts both JSON integers and floats and keeps null distinguishable from
// zero. Response fields unknown to this SDK version are preserved in the
// record's Extra bag instead of being dropped.
//
// # Errors
//
// Client-side validation failures are *ParameterError. HTTP-level failures
// are *APIError with a Kind (authentication, not found, invalid request,
// rate limited, server error, version mismatch); the server's message is
// passed through unmodified. Network failures are *TransportError. The SDK
// never retries; branch on the kind to build your own retry policy:
//
//	var apiErr *rtbhouse.APIError
//	if errors.As(err, &apiErr) && apiErr.IsRetryable() {
//		// back off and retry
//	}
//
// # Conversions
//
// GetRTBConversions returns a lazy iterator over cursor-paginated conversion
// records:
//
//	it, err := client.GetRTBConversions(ctx, advHash, params)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for it.Next(ctx) {
//		process(it.Record())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
//
// Pages are fetched on demand; abandoning the iterator triggers no further
// requests.
package rtbhouse
