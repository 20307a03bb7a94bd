// Package feedstats implements the feed statistics service behind the
// reader dashboard.
//
// # Architecture
//
// The service is structured into several key packages:
//   - models: The JSON data contract shared by every surface
//   - api: Strict payload decoding and an HTTP client for the service
//   - database: PostgreSQL queries and embedded schema migrations
//   - stats: Business logic and the TTL-bounded result cache
//   - grpc: gRPC service, interceptors and health checks
//   - rest: The echo HTTP surface under /v1/feeds
//   - scheduler: Periodic cache refresh
//
// Key Features
//
//   - Summaries:
//     Feed, summarized, article and unsummarized article counts, with the
//     detailed counts fetched concurrently.
//
//   - Trends:
//     Article, summary and feed activity over 4h, 24h, 3d and 7d windows.
//     Windows up to 24h are bucketed hourly, longer ones daily.
//
//   - Performance:
//     Results are cached in an LRU with a TTL and refreshed on a cron
//     schedule so dashboards rarely wait on the database.
//
// Example Usage
//
//	client := api.NewStatsClient("http://localhost:8080")
//	trend, err := client.FetchTrendStats(ctx, models.Window7d)
//	if err != nil {
//	    return err
//	}
//	for _, p := range trend.DataPoints {
//	    fmt.Println(p.Timestamp, p.Articles)
//	}
//
// For more information about specific packages, see their respective
// documentation.
package feedstats
