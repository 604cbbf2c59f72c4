// Package qbclient provides the primary entry point for constructing a
// Quickbase API client that implements the quickbase.Client interface.
//
// It layers configuration and HTTP transport on top of the request, response
// and result types defined in the quickbase package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/quickbase-client/pkg/qbclient"
//	  "github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
//	)
//
//	func example() {
//	  cli, err := qbclient.NewWithToken("acme", "b7xk3d_abc_0_token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with full configuration:
//	  cli, err = qbclient.New(&quickbase.Config{
//	    Realm:     "acme",
//	    UserToken: "b7xk3d_abc_0_token",
//	    Logger:    myLogger,
//	    Debug:     true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  del := quickbase.NewCommandBuilder().
//	    ForTable("bck7gp3q2").
//	    WithDeletionCriteria("{6.EX.'hello'}").
//	    BuildDeleteCommand()
//
//	  result, err := cli.DeleteRecords(context.Background(), del)
//	  if err != nil { log.Fatal(err) }
//	  if result.IsSuccess() {
//	    log.Printf("deleted %d", result.MustValue().NumberDeleted)
//	  }
//	}
//
// # Transport
//
// By default requests go through a go-retryablehttp client configured to
// send each request once. Supply Config.HTTPClient to use another transport,
// for example an *http.Client with a custom timeout or a test double.
package qbclient
